package document

import (
	"errors"
	"fmt"
	"testing"
)

// counterIDs returns a deterministic IDSource for tests.
func counterIDs() IDSource {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestSetFieldReturnsNewDocument(t *testing.T) {
	doc := Seed()
	next := SetField(doc, FieldClientName, "collabara")
	if next.ClientName != "collabara" {
		t.Fatalf("client name = %q", next.ClientName)
	}
	if doc.ClientName != "" {
		t.Fatalf("original document mutated")
	}
	next = SetField(next, FieldOrderType, string(OrderTypeGroup))
	if next.OrderType != OrderTypeGroup {
		t.Fatalf("order type = %q", next.OrderType)
	}
}

func TestAddSectionUsesFreshIDs(t *testing.T) {
	doc := Seed()
	next := AddSection(doc, counterIDs())
	if len(next.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(next.Sections))
	}
	added := next.Sections[1]
	if added.ID != "id-1" {
		t.Fatalf("section id = %q", added.ID)
	}
	if len(added.Talents) != 2 || added.Talents[0].ID != "id-2" || added.Talents[1].ID != "id-3" {
		t.Fatalf("unexpected talent ids: %+v", added.Talents)
	}
	if !added.Expanded {
		t.Fatalf("new section must start expanded")
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("original document mutated")
	}

	seen := map[string]bool{}
	for _, section := range next.Sections {
		for _, talent := range section.Talents {
			if seen[talent.ID] {
				t.Fatalf("duplicate talent id %s", talent.ID)
			}
			seen[talent.ID] = true
		}
	}
}

func TestRemoveSectionCascades(t *testing.T) {
	doc := AddSection(Seed(), counterIDs())
	next, err := RemoveSection(doc, "1")
	if err != nil {
		t.Fatalf("remove section: %v", err)
	}
	if len(next.Sections) != 1 || next.Sections[0].ID != "id-1" {
		t.Fatalf("unexpected sections after removal: %+v", next.Sections)
	}
	for _, id := range []string{"t1", "t2"} {
		if _, err := next.Talent("1", id); !errors.Is(err, ErrSectionNotFound) {
			t.Fatalf("talent %s still addressable after cascade: %v", id, err)
		}
	}
	if _, err := RemoveSection(next, "missing"); !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}

func TestSetSectionField(t *testing.T) {
	doc := Seed()
	next, err := SetSectionField(doc, "1", SectionJobTitle, "Business Administrator")
	if err != nil {
		t.Fatalf("set job title: %v", err)
	}
	next, err = SetSectionField(next, "1", SectionJobID, "REQ-99")
	if err != nil {
		t.Fatalf("set job id: %v", err)
	}
	if next.Sections[0].JobTitle != "Business Administrator" || next.Sections[0].JobID != "REQ-99" {
		t.Fatalf("unexpected section: %+v", next.Sections[0])
	}
	if doc.Sections[0].JobTitle != "Application Development" {
		t.Fatalf("original document mutated")
	}
}

func TestToggleSectionExpanded(t *testing.T) {
	doc := Seed()
	next, err := ToggleSectionExpanded(doc, "1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if next.Sections[0].Expanded {
		t.Fatalf("expected collapsed section")
	}
	next, err = ToggleSectionExpanded(next, "1")
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if !next.Sections[0].Expanded {
		t.Fatalf("expected expanded section")
	}
}

func TestSetTalentField(t *testing.T) {
	doc := Seed()
	next, err := SetTalentField(doc, "1", "t1", TalentBillRate, "120")
	if err != nil {
		t.Fatalf("set bill rate: %v", err)
	}
	if next.Sections[0].Talents[0].BillRate != "120" {
		t.Fatalf("bill rate = %q", next.Sections[0].Talents[0].BillRate)
	}
	if doc.Sections[0].Talents[0].BillRate != "" {
		t.Fatalf("original document mutated")
	}
	if _, err := SetTalentField(doc, "1", "missing", TalentBillRate, "1"); !errors.Is(err, ErrTalentNotFound) {
		t.Fatalf("expected ErrTalentNotFound, got %v", err)
	}
}

func TestRemoveTalentLeavesSiblings(t *testing.T) {
	doc := Seed()
	next, err := RemoveTalent(doc, "1", "t1")
	if err != nil {
		t.Fatalf("remove talent: %v", err)
	}
	talents := next.Sections[0].Talents
	if len(talents) != 1 || talents[0].ID != "t2" {
		t.Fatalf("unexpected talents after removal: %+v", talents)
	}
	if len(doc.Sections[0].Talents) != 2 {
		t.Fatalf("original document mutated")
	}
}
