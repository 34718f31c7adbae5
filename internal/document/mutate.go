package document

import "fmt"

// OrderField names one top-level purchase-order scalar. Using a closed set
// instead of string keys keeps field addressing checkable at compile time.
type OrderField int

const (
	FieldClientName OrderField = iota
	FieldOrderType
	FieldOrderNo
	FieldReceivedOn
	FieldReceivedFromName
	FieldReceivedFromEmail
	FieldStartDate
	FieldEndDate
	FieldBudget
	FieldCurrency
)

// Key returns the error-map key the validator uses for this field.
func (f OrderField) Key() string {
	switch f {
	case FieldClientName:
		return "clientName"
	case FieldOrderType:
		return "purchaseOrderType"
	case FieldOrderNo:
		return "purchaseOrderNo"
	case FieldReceivedOn:
		return "receivedOn"
	case FieldReceivedFromName:
		return "receivedFromName"
	case FieldReceivedFromEmail:
		return "receivedFromEmail"
	case FieldStartDate:
		return "poStartDate"
	case FieldEndDate:
		return "poEndDate"
	case FieldBudget:
		return "budget"
	case FieldCurrency:
		return "currency"
	}
	return ""
}

// SectionField names an editable talent-section scalar.
type SectionField int

const (
	SectionJobTitle SectionField = iota
	SectionJobID
)

// TalentField names an editable talent scalar. Selected is deliberately
// absent; selection changes go through the selection policy.
type TalentField int

const (
	TalentContractDuration TalentField = iota
	TalentBillRate
	TalentCurrency
	TalentStandardTimeBR
	TalentStandardCurrency
	TalentOverTimeBR
	TalentOverCurrency
)

// Key returns the per-talent error-map key suffix for this field.
func (f TalentField) Key() string {
	switch f {
	case TalentContractDuration:
		return "contractDuration"
	case TalentBillRate:
		return "billRate"
	case TalentCurrency:
		return "currency"
	case TalentStandardTimeBR:
		return "standardTimeBR"
	case TalentStandardCurrency:
		return "standardCurrency"
	case TalentOverTimeBR:
		return "overTimeBR"
	case TalentOverCurrency:
		return "overCurrency"
	}
	return ""
}

// SetField replaces one top-level scalar and returns the new document.
func SetField(po PurchaseOrder, field OrderField, value string) PurchaseOrder {
	out := po.Clone()
	switch field {
	case FieldClientName:
		out.ClientName = value
	case FieldOrderType:
		out.OrderType = OrderType(value)
	case FieldOrderNo:
		out.OrderNo = value
	case FieldReceivedOn:
		out.ReceivedOn = value
	case FieldReceivedFromName:
		out.ReceivedFromName = value
	case FieldReceivedFromEmail:
		out.ReceivedFromEmail = value
	case FieldStartDate:
		out.StartDate = value
	case FieldEndDate:
		out.EndDate = value
	case FieldBudget:
		out.Budget = value
	case FieldCurrency:
		out.Currency = value
	}
	return out
}

// AddSection appends a fresh section carrying the roster template. New ids
// come from the supplied IDSource.
func AddSection(po PurchaseOrder, ids IDSource) PurchaseOrder {
	if ids == nil {
		ids = UUIDSource
	}
	out := po.Clone()
	out.Sections = append(out.Sections, templateSection(ids))
	return out
}

// RemoveSection drops the named section and every talent it contains.
func RemoveSection(po PurchaseOrder, sectionID string) (PurchaseOrder, error) {
	idx, err := sectionIndex(po, sectionID)
	if err != nil {
		return po, err
	}
	out := po.Clone()
	out.Sections = append(out.Sections[:idx], out.Sections[idx+1:]...)
	return out, nil
}

// SetSectionField replaces one scalar on the named section.
func SetSectionField(po PurchaseOrder, sectionID string, field SectionField, value string) (PurchaseOrder, error) {
	idx, err := sectionIndex(po, sectionID)
	if err != nil {
		return po, err
	}
	out := po.Clone()
	switch field {
	case SectionJobTitle:
		out.Sections[idx].JobTitle = value
	case SectionJobID:
		out.Sections[idx].JobID = value
	}
	return out, nil
}

// ToggleSectionExpanded flips the presentational expanded flag. It never
// feeds into validation.
func ToggleSectionExpanded(po PurchaseOrder, sectionID string) (PurchaseOrder, error) {
	idx, err := sectionIndex(po, sectionID)
	if err != nil {
		return po, err
	}
	out := po.Clone()
	out.Sections[idx].Expanded = !out.Sections[idx].Expanded
	return out, nil
}

// SetTalentField replaces one scalar on the addressed talent.
func SetTalentField(po PurchaseOrder, sectionID, talentID string, field TalentField, value string) (PurchaseOrder, error) {
	sIdx, tIdx, err := talentIndex(po, sectionID, talentID)
	if err != nil {
		return po, err
	}
	out := po.Clone()
	talent := &out.Sections[sIdx].Talents[tIdx]
	switch field {
	case TalentContractDuration:
		talent.ContractDuration = value
	case TalentBillRate:
		talent.BillRate = value
	case TalentCurrency:
		talent.Currency = value
	case TalentStandardTimeBR:
		talent.StandardTimeBR = value
	case TalentStandardCurrency:
		talent.StandardCurrency = value
	case TalentOverTimeBR:
		talent.OverTimeBR = value
	case TalentOverCurrency:
		talent.OverCurrency = value
	}
	return out, nil
}

// RemoveTalent removes one talent from its section. Other sections and the
// remaining talents are untouched.
func RemoveTalent(po PurchaseOrder, sectionID, talentID string) (PurchaseOrder, error) {
	sIdx, tIdx, err := talentIndex(po, sectionID, talentID)
	if err != nil {
		return po, err
	}
	out := po.Clone()
	talents := out.Sections[sIdx].Talents
	out.Sections[sIdx].Talents = append(talents[:tIdx], talents[tIdx+1:]...)
	return out, nil
}

func sectionIndex(po PurchaseOrder, sectionID string) (int, error) {
	for i, section := range po.Sections {
		if section.ID == sectionID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
}

func talentIndex(po PurchaseOrder, sectionID, talentID string) (int, int, error) {
	sIdx, err := sectionIndex(po, sectionID)
	if err != nil {
		return -1, -1, err
	}
	for i, talent := range po.Sections[sIdx].Talents {
		if talent.ID == talentID {
			return sIdx, i, nil
		}
	}
	return -1, -1, fmt.Errorf("%w: %s", ErrTalentNotFound, talentID)
}
