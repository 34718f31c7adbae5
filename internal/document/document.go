// Package document holds the in-memory purchase-order model.
//
// A PurchaseOrder is a plain value: mutations live in mutate.go and always
// return a fresh deep copy, so callers replace their copy wholesale and an
// observer never sees a half-applied edit.
package document

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// OrderType enumerates the purchase-order kinds. The empty string means the
// user has not picked one yet.
type OrderType string

const (
	OrderTypeNone       OrderType = ""
	OrderTypeIndividual OrderType = "individual-po"
	OrderTypeGroup      OrderType = "group-po"
)

// ErrSectionNotFound signals a mutation addressed a section id that is not in
// the document. This is a caller bug, not a user validation failure.
var ErrSectionNotFound = errors.New("document: talent section not found")

// ErrTalentNotFound signals a mutation addressed a talent id that is not in
// the named section.
var ErrTalentNotFound = errors.New("document: talent not found")

// PurchaseOrder is the root document a session authors. All scalar fields are
// stored as the user typed them; only the validator decides what is legal.
type PurchaseOrder struct {
	ClientName        string          `json:"client_name"`
	OrderType         OrderType       `json:"purchase_order_type"`
	OrderNo           string          `json:"purchase_order_no"`
	ReceivedOn        string          `json:"received_on"`
	ReceivedFromName  string          `json:"received_from_name"`
	ReceivedFromEmail string          `json:"received_from_email"`
	StartDate         string          `json:"po_start_date"`
	EndDate           string          `json:"po_end_date"`
	Budget            string          `json:"budget"`
	Currency          string          `json:"currency"`
	Sections          []TalentSection `json:"sections"`
}

// TalentSection groups talent line items under one job title/req id.
// Sections keep their insertion order; nothing reorders them.
type TalentSection struct {
	ID       string   `json:"id"`
	JobTitle string   `json:"job_title"`
	JobID    string   `json:"job_id"`
	Expanded bool     `json:"expanded"`
	Talents  []Talent `json:"talents"`
}

// Talent is one candidate line item. IDs are unique across the whole
// document, not just within a section; selection and error keys rely on that.
type Talent struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Selected         bool   `json:"selected"`
	ContractDuration string `json:"contract_duration"`
	BillRate         string `json:"bill_rate"`
	Currency         string `json:"currency"`
	StandardTimeBR   string `json:"standard_time_br"`
	StandardCurrency string `json:"standard_currency"`
	OverTimeBR       string `json:"over_time_br"`
	OverCurrency     string `json:"over_currency"`
}

// IDSource produces fresh unique identifiers for new sections and talents.
// Production code uses UUIDs; tests inject a deterministic counter.
type IDSource func() string

// UUIDSource is the default IDSource.
func UUIDSource() string {
	return uuid.NewString()
}

const (
	seedJobTitle = "Application Development"
	seedJobID    = "OWNAT_234"
	seedCurrency = "USD - Dollars ($)"
)

var seedRoster = []string{"Monika Goyal Test", "shaili khatri"}

// Seed returns the default document: one expanded section holding the
// two-talent roster fixture, every field otherwise blank.
func Seed() PurchaseOrder {
	section := TalentSection{
		ID:       "1",
		JobTitle: seedJobTitle,
		JobID:    seedJobID,
		Expanded: true,
		Talents: []Talent{
			seedTalent("t1", seedRoster[0]),
			seedTalent("t2", seedRoster[1]),
		},
	}
	return PurchaseOrder{Sections: []TalentSection{section}}
}

func seedTalent(id, name string) Talent {
	return Talent{
		ID:               id,
		Name:             name,
		Currency:         seedCurrency,
		StandardCurrency: seedCurrency,
		OverCurrency:     seedCurrency,
	}
}

// templateSection builds the section template appended by AddSection: the
// same roster as the seed, under fresh ids.
func templateSection(ids IDSource) TalentSection {
	section := TalentSection{
		ID:       ids(),
		JobTitle: seedJobTitle,
		JobID:    seedJobID,
		Expanded: true,
	}
	for _, name := range seedRoster {
		section.Talents = append(section.Talents, seedTalent(ids(), name))
	}
	return section
}

// Section returns the section with the given id.
func (po PurchaseOrder) Section(sectionID string) (TalentSection, error) {
	for _, section := range po.Sections {
		if section.ID == sectionID {
			return section, nil
		}
	}
	return TalentSection{}, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
}

// Talent returns the talent with the given id from the named section.
func (po PurchaseOrder) Talent(sectionID, talentID string) (Talent, error) {
	section, err := po.Section(sectionID)
	if err != nil {
		return Talent{}, err
	}
	for _, talent := range section.Talents {
		if talent.ID == talentID {
			return talent, nil
		}
	}
	return Talent{}, fmt.Errorf("%w: %s", ErrTalentNotFound, talentID)
}

// Clone deep-copies the document so the copy can be edited independently.
func (po PurchaseOrder) Clone() PurchaseOrder {
	out := po
	out.Sections = cloneSections(po.Sections)
	return out
}

func cloneSections(sections []TalentSection) []TalentSection {
	if len(sections) == 0 {
		return nil
	}
	out := make([]TalentSection, len(sections))
	for i, section := range sections {
		out[i] = section
		out[i].Talents = cloneTalents(section.Talents)
	}
	return out
}

func cloneTalents(talents []Talent) []Talent {
	if len(talents) == 0 {
		return nil
	}
	out := make([]Talent, len(talents))
	copy(out, talents)
	return out
}
