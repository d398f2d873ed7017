package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultAPIBase = "http://localhost:8000"

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

type step int

const (
	stepEnteringUsername step = iota
	stepEnteringEmail
	stepEnteringPassword
	stepAuthenticating
	stepEnteringProjectName
	stepCreatingProject
	stepEnteringDeviceName
	stepEnteringSerial
	stepRegisteringDevice
	stepComplete
)

type model struct {
	step         step
	apiBase      string
	username     string
	email        string
	password     string
	token        string
	projectName  string
	projectID    string
	deviceName   string
	deviceSerial string
	deviceID     string
	currentInput string
	message      string
	quitting     bool
}

type authSuccessMsg struct{ token string }
type projectCreatedMsg struct{ id string }
type deviceCreatedMsg struct{ id string }
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel() model {
	base := os.Getenv("IOT_API_URL")
	if base == "" {
		base = defaultAPIBase
	}
	return model{
		step:    stepEnteringUsername,
		apiBase: strings.TrimRight(base, "/"),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

type resource struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

func postJSON(client *http.Client, endpoint, token string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest("POST", endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return client.Do(req)
}

func decodeResource(resp *http.Response) (string, error) {
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}
	var res resource
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", err
	}
	return res.Data.ID, nil
}

// authenticate registers the account, then exchanges the credentials for
// a bearer token. An already-taken username falls through to the token
// exchange so the tool also works for existing accounts.
func authenticate(apiBase, username, email, password string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		resp, err := postJSON(client, apiBase+"/api/v1/auth/register", "", map[string]string{
			"username": username,
			"email":    email,
			"password": password,
		})
		if err != nil {
			return errMsg{fmt.Errorf("cannot reach API at %s: %w", apiBase, err)}
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusConflict {
			return errMsg{fmt.Errorf("registration failed with status %d", resp.StatusCode)}
		}

		form := url.Values{}
		form.Set("username", username)
		form.Set("password", password)
		resp, err = client.PostForm(apiBase+"/api/v1/auth/token", form)
		if err != nil {
			return errMsg{fmt.Errorf("token request failed: %w", err)}
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("login failed with status %d", resp.StatusCode)}
		}

		var result struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return errMsg{err}
		}
		if result.AccessToken == "" {
			return errMsg{fmt.Errorf("no token in response")}
		}
		return authSuccessMsg{token: result.AccessToken}
	}
}

func createProject(apiBase, token, name string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}
		resp, err := postJSON(client, apiBase+"/api/v1/projects", token, map[string]string{
			"name":        name,
			"description": "Created by iot-setup",
		})
		if err != nil {
			return errMsg{fmt.Errorf("project creation failed: %w", err)}
		}
		id, err := decodeResource(resp)
		if err != nil {
			return errMsg{err}
		}
		return projectCreatedMsg{id: id}
	}
}

func registerDevice(apiBase, token, projectID, name, serial string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}
		resp, err := postJSON(client, apiBase+"/api/v1/devices", token, map[string]string{
			"name":          name,
			"serial_number": serial,
			"device_type":   "gateway",
			"project_id":    projectID,
		})
		if err != nil {
			return errMsg{fmt.Errorf("device registration failed: %w", err)}
		}
		id, err := decodeResource(resp)
		if err != nil {
			return errMsg{err}
		}
		return deviceCreatedMsg{id: id}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}

		default:
			if m.step != stepAuthenticating && m.step != stepCreatingProject && m.step != stepRegisteringDevice {
				m.currentInput += msg.String()
			}

		case "enter":
			switch m.step {
			case stepEnteringUsername:
				if m.currentInput != "" {
					m.username = m.currentInput
					m.currentInput = ""
					m.step = stepEnteringEmail
				}

			case stepEnteringEmail:
				if m.currentInput != "" {
					m.email = m.currentInput
					m.currentInput = ""
					m.step = stepEnteringPassword
				}

			case stepEnteringPassword:
				if m.currentInput != "" {
					m.password = m.currentInput
					m.currentInput = ""
					m.step = stepAuthenticating
					m.message = "Signing in..."
					return m, authenticate(m.apiBase, m.username, m.email, m.password)
				}

			case stepEnteringProjectName:
				if m.currentInput != "" {
					m.projectName = m.currentInput
					m.currentInput = ""
					m.step = stepCreatingProject
					m.message = "Creating project..."
					return m, createProject(m.apiBase, m.token, m.projectName)
				}

			case stepEnteringDeviceName:
				if m.currentInput != "" {
					m.deviceName = m.currentInput
					m.currentInput = ""
					m.step = stepEnteringSerial
				}

			case stepEnteringSerial:
				if m.currentInput != "" {
					m.deviceSerial = m.currentInput
					m.currentInput = ""
					m.step = stepRegisteringDevice
					m.message = "Registering device..."
					return m, registerDevice(m.apiBase, m.token, m.projectID, m.deviceName, m.deviceSerial)
				}

			case stepComplete:
				m.quitting = true
				return m, tea.Quit
			}
		}

	case authSuccessMsg:
		m.token = msg.token
		m.step = stepEnteringProjectName
		m.message = successStyle.Render("Signed in as " + m.username)

	case projectCreatedMsg:
		m.projectID = msg.id
		m.step = stepEnteringDeviceName
		m.message = successStyle.Render("Project created: " + m.projectID)

	case deviceCreatedMsg:
		m.deviceID = msg.id
		m.step = stepComplete
		m.message = successStyle.Render("Device registered!")

	case errMsg:
		m.message = errorStyle.Render(msg.err.Error())
		// back out one step so the input can be retried
		switch m.step {
		case stepAuthenticating:
			m.step = stepEnteringUsername
		case stepCreatingProject:
			m.step = stepEnteringProjectName
		case stepRegisteringDevice:
			m.step = stepEnteringSerial
		}
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("IoT Manager Setup\n\n"))
	if m.message != "" {
		s.WriteString(m.message + "\n\n")
	}

	switch m.step {
	case stepEnteringUsername:
		s.WriteString(promptStyle.Render("Enter your username:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringEmail:
		s.WriteString(promptStyle.Render("Enter your email:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringPassword:
		s.WriteString(promptStyle.Render("Enter your password:\n"))
		s.WriteString(inputStyle.Render("> " + strings.Repeat("*", len(m.currentInput))))
		s.WriteString("\n\nPress Enter\n")

	case stepAuthenticating, stepCreatingProject, stepRegisteringDevice:
		s.WriteString("Working...\n")

	case stepEnteringProjectName:
		s.WriteString(promptStyle.Render("Name your project:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringDeviceName:
		s.WriteString(promptStyle.Render("Name your device:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringSerial:
		s.WriteString(promptStyle.Render("Enter the device serial number:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepComplete:
		s.WriteString(fmt.Sprintf("Project ID: %s\n", m.projectID))
		s.WriteString(fmt.Sprintf("Device ID:  %s\n", m.deviceID))
		s.WriteString(fmt.Sprintf("Serial:     %s\n", m.deviceSerial))
		s.WriteString("\nPoint your gateway at the ingest endpoint with this serial.\n")
		s.WriteString("Press Enter to exit\n")
	}

	return s.String()
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
