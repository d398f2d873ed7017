package usecases

import (
	"testing"

	"iot-manager/errs"
)

func TestTagDuplicateName(t *testing.T) {
	e := newEnv(t)
	e.tag(t, "outdoor")

	if _, err := e.tagUC.Create(TagCreate{Name: "outdoor"}); errs.KindOf(err) != errs.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestTagRename(t *testing.T) {
	e := newEnv(t)
	outdoor := e.tag(t, "outdoor")
	e.tag(t, "indoor")

	// renaming onto an existing name is a conflict
	if _, err := e.tagUC.Update(outdoor.ID, TagUpdate{Name: ptr("indoor")}); errs.KindOf(err) != errs.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	// renaming to the same name is a no-op, not a conflict
	if _, err := e.tagUC.Update(outdoor.ID, TagUpdate{Name: ptr("outdoor")}); err != nil {
		t.Fatalf("same-name update: %v", err)
	}
	updated, err := e.tagUC.Update(outdoor.ID, TagUpdate{Name: ptr("rooftop")})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if updated.Name != "rooftop" {
		t.Fatalf("name not applied: %q", updated.Name)
	}
}

func TestTagDeleteDetaches(t *testing.T) {
	e := newEnv(t)
	owner := e.user(t, "owner")
	project := e.project(t, owner.ID)
	tag := e.tag(t, "outdoor")

	if _, err := e.projectUC.AddTags(project.ID, []string{tag.ID}, owner.ID); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := e.tagUC.Delete(tag.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	tags, err := e.projectUC.GetTags(project.ID, owner.ID)
	if err != nil {
		t.Fatalf("get tags: %v", err)
	}
	if len(tags) != 0 {
		t.Fatalf("deleted tag still attached: %d", len(tags))
	}
}
