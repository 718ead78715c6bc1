package model

import (
	"testing"
)

func templateProject() Project {
	p := NewProject()
	p.Name = "Source"
	obj := NewSceneObject("cube", 20, 20, 20)
	obj.MeshType = MeshTypeInfill
	p.Objects = append(p.Objects, obj)
	p.Overrides[obj.ID] = map[string]string{"infill_sparse_density": "80"}
	p.Visible[obj.ID] = []string{"infill_sparse_density"}
	return p
}

func TestTemplateToProjectRekeysObjects(t *testing.T) {
	src := templateProject()
	tmpl := NewProjectTemplate("My Template", "", src)

	p := tmpl.ToProject("New Project")

	if len(p.Objects) != 1 {
		t.Fatalf("expected 1 object, got %d", len(p.Objects))
	}
	newObj := p.Objects[0]
	if newObj.ID == src.Objects[0].ID {
		t.Error("template instantiation must assign fresh object ids")
	}
	if newObj.MeshType != MeshTypeInfill {
		t.Errorf("mesh type must be preserved, got %v", newObj.MeshType)
	}

	// Overrides and visibility follow the new id
	if p.Overrides[newObj.ID]["infill_sparse_density"] != "80" {
		t.Error("overrides not re-keyed to the new object id")
	}
	if len(p.Visible[newObj.ID]) != 1 {
		t.Error("visibility set not re-keyed to the new object id")
	}
	if _, ok := p.Overrides[src.Objects[0].ID]; ok {
		t.Error("old object id must not appear in the new project")
	}
}

func TestTemplateIsIndependentOfSource(t *testing.T) {
	src := templateProject()
	tmpl := NewProjectTemplate("My Template", "", src)

	src.Overrides[src.Objects[0].ID]["infill_sparse_density"] = "5"
	src.Objects[0].Name = "renamed"

	if tmpl.Overrides[tmpl.Objects[0].ID]["infill_sparse_density"] != "80" {
		t.Error("template must deep-copy overrides")
	}
	if tmpl.Objects[0].Name != "cube" {
		t.Error("template must copy objects")
	}
}

func TestTemplateUpdateFromKeepsIdentity(t *testing.T) {
	tmpl := NewProjectTemplate("My Template", "desc", templateProject())
	id, created := tmpl.ID, tmpl.CreatedAt

	p := NewProject()
	p.Objects = append(p.Objects, NewSceneObject("new", 5, 5, 5))
	tmpl.UpdateFrom(p)

	if tmpl.ID != id || tmpl.CreatedAt != created {
		t.Error("UpdateFrom must keep the template's identity")
	}
	if len(tmpl.Objects) != 1 || tmpl.Objects[0].Name != "new" {
		t.Error("UpdateFrom must replace the template content")
	}
}
