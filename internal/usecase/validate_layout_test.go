package usecase

import (
	"context"
	"testing"

	"github.com/aalvaropc/neuroreport/internal/domain"
)

// --- fakes shared by the usecase tests ---

type fakeLayoutLoader struct {
	doc domain.Document
	err error
}

func (f fakeLayoutLoader) LoadLayout(_ string) (domain.Document, error) {
	return f.doc, f.err
}
func (f fakeLayoutLoader) ListLayouts(_ string) ([]domain.LayoutRef, error) {
	return nil, nil
}

type fakeScanner struct {
	artifacts []domain.Artifact
	err       error
}

func (f fakeScanner) Scan(_ string) ([]domain.Artifact, error) {
	return f.artifacts, f.err
}

func mkArtifact(t *testing.T, name string) domain.Artifact {
	t.Helper()
	a, ok := domain.ParseArtifactName(name)
	if !ok {
		t.Fatalf("bad artifact name in test: %s", name)
	}
	return a
}

func validDoc() domain.Document {
	return domain.Document{
		Package: "cbma",
		Text:    domain.TextBlocks{"note": "FWE-corrected"},
		Sections: []domain.Section{
			{
				Name: "Results",
				Reportlets: []domain.Reportlet{
					{
						Selector: domain.Selector{domain.KeyValue: "z", domain.KeyTail: "positive"},
						Caption:  "Positive tail. {{note}}",
					},
					{
						Selector: domain.Selector{domain.KeyValue: "z", domain.KeyTail: "negative"},
					},
				},
			},
		},
	}
}

// --- ValidateLayout ---

func TestValidateLayout_OK(t *testing.T) {
	arts := []domain.Artifact{
		mkArtifact(t, "value-z_tail-positive.png"),
		mkArtifact(t, "value-z_tail-negative.png"),
	}

	uc := NewValidateLayout(fakeLayoutLoader{doc: validDoc()}, fakeScanner{artifacts: arts})
	rep, err := uc.Execute(context.Background(), "layouts/default.yaml", "artifacts")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if rep.Reportlets != 2 || rep.Sections != 1 {
		t.Fatalf("unexpected counts: %+v", rep)
	}
	if len(rep.Missing) != 0 || len(rep.Ambiguous) != 0 {
		t.Fatalf("expected clean report, got %+v", rep)
	}
}

func TestValidateLayout_DanglingReference(t *testing.T) {
	doc := validDoc()
	doc.Sections[0].Reportlets[0].Caption = "{{undefined_block}}"

	uc := NewValidateLayout(fakeLayoutLoader{doc: doc}, fakeScanner{})
	_, err := uc.Execute(context.Background(), "layouts/default.yaml", "")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindMissingText) {
		t.Fatalf("expected KindMissingText, got: %v", err)
	}
}

func TestValidateLayout_MissingArtifactIsInformational(t *testing.T) {
	arts := []domain.Artifact{mkArtifact(t, "value-z_tail-positive.png")}

	uc := NewValidateLayout(fakeLayoutLoader{doc: validDoc()}, fakeScanner{artifacts: arts})
	rep, err := uc.Execute(context.Background(), "layouts/default.yaml", "artifacts")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(rep.Missing) != 1 || rep.Missing[0] != "tail-negative_value-z" {
		t.Fatalf("unexpected missing list: %v", rep.Missing)
	}
}

func TestValidateLayout_AmbiguityFails(t *testing.T) {
	arts := []domain.Artifact{
		mkArtifact(t, "value-z_tail-positive_dset-1.png"),
		mkArtifact(t, "value-z_tail-positive_dset-2.png"),
		mkArtifact(t, "value-z_tail-negative.png"),
	}

	uc := NewValidateLayout(fakeLayoutLoader{doc: validDoc()}, fakeScanner{artifacts: arts})
	rep, err := uc.Execute(context.Background(), "layouts/default.yaml", "artifacts")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindAmbiguousSelector) {
		t.Fatalf("expected KindAmbiguousSelector, got: %v", err)
	}
	if len(rep.Ambiguous) != 1 {
		t.Fatalf("expected 1 ambiguity, got %+v", rep.Ambiguous)
	}
	if len(rep.Ambiguous[0].Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %v", rep.Ambiguous[0].Candidates)
	}
}

func TestValidateLayout_SkipsArtifactChecksWithoutDir(t *testing.T) {
	uc := NewValidateLayout(fakeLayoutLoader{doc: validDoc()}, fakeScanner{err: domain.ErrNotFound})
	if _, err := uc.Execute(context.Background(), "layouts/default.yaml", ""); err != nil {
		t.Fatalf("expected scanner to be skipped, got: %v", err)
	}
}
