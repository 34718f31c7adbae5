// internal/tui/app.go
//
// Terminal form for authoring a purchase order. bubbletea follows The Elm
// Architecture: the App model holds all state, Update folds messages into a
// new model, View renders it. Every edit is routed through the session
// package so the TUI never touches the document directly.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/podraft/podraft/internal/catalog"
	"github.com/podraft/podraft/internal/document"
	"github.com/podraft/podraft/internal/logbook"
	"github.com/podraft/podraft/internal/selection"
	"github.com/podraft/podraft/internal/session"
	"github.com/podraft/podraft/internal/snapshot"
	"github.com/podraft/podraft/internal/validate"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	focusStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B801"))
	requiredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	lockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	sectionStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true).
			MarginTop(1)
)

// controlKind says how a focused control reacts to input.
type controlKind int

const (
	controlText   controlKind = iota // free text, edited through the shared input
	controlSelect                    // cycles through catalog options with left/right
	controlCheck                     // toggled with space/enter
)

// control is one focusable spot on the form, rebuilt from the session state
// after every action so removals and additions stay in sync.
type control struct {
	kind      controlKind
	label     string
	options   []string // controlSelect choices (stored values)
	labels    []string // display labels matching options
	errKey    string
	required  bool
	order     document.OrderField
	isOrder   bool
	sectionID string
	section   document.SectionField
	isSection bool
	talentID  string
	talent    document.TalentField
	isTalent  bool
	isToggle  bool // talent selection checkbox
	unit      string
}

// AppOption customizes App construction for tests.
type AppOption func(*App)

// WithSnapshotStore overrides where saved documents are written.
func WithSnapshotStore(store *snapshot.Store) AppOption {
	return func(a *App) {
		if store != nil {
			a.store = store
		}
	}
}

// WithSession injects a deterministic session applier.
func WithSession(sess *session.Session) AppOption {
	return func(a *App) {
		if sess != nil {
			a.session = sess
		}
	}
}

// App is the main application model.
type App struct {
	session *session.Session
	state   session.State
	catalog catalog.Catalog
	logbook *logbook.Logbook
	store   *snapshot.Store

	controls []control
	focus    int
	input    textinput.Model

	statusMsg string
	width     int
	height    int
}

// NewApp builds the form bound to a fresh seed document.
func NewApp(lb *logbook.Logbook, opts ...AppOption) *App {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 120
	app := &App{
		session: session.New(),
		catalog: catalog.Default(),
		logbook: lb,
		store:   snapshot.NewStore(""),
		input:   input,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	app.state = app.session.NewState()
	app.rebuildControls()
	app.loadFocusedValue()
	app.logbook.SessionOpened()
	return app
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update folds one message into the model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "ctrl+s":
		a.handleSave()
		return a, nil
	case "ctrl+r":
		a.handleReset()
		return a, nil
	case "tab", "down":
		a.moveFocus(1)
		return a, nil
	case "shift+tab", "up":
		a.moveFocus(-1)
		return a, nil
	}

	if a.state.Mode == session.ModeLocked {
		switch msg.String() {
		case "q", "esc":
			return a, tea.Quit
		case "e":
			// The original form wires Edit to a full reset.
			a.handleReset()
		}
		return a, nil
	}

	switch msg.String() {
	case "ctrl+a":
		a.apply(func(st session.State) (session.State, error) {
			return a.session.AddSection(st)
		}, "Section added")
		return a, nil
	case "ctrl+d":
		if id := a.focusedSectionID(); id != "" {
			a.apply(func(st session.State) (session.State, error) {
				return a.session.RemoveSection(st, id)
			}, "Section removed")
		}
		return a, nil
	case "ctrl+x":
		if ctl := a.focused(); ctl != nil && ctl.talentID != "" {
			sectionID, talentID := ctl.sectionID, ctl.talentID
			a.apply(func(st session.State) (session.State, error) {
				return a.session.RemoveTalent(st, sectionID, talentID)
			}, "Talent removed")
		}
		return a, nil
	case "ctrl+e":
		if id := a.focusedSectionID(); id != "" {
			a.apply(func(st session.State) (session.State, error) {
				return a.session.ToggleSectionExpanded(st, id)
			}, "")
		}
		return a, nil
	}

	ctl := a.focused()
	if ctl == nil {
		return a, nil
	}

	switch ctl.kind {
	case controlCheck:
		if msg.String() == " " || msg.String() == "enter" {
			sectionID, talentID := ctl.sectionID, ctl.talentID
			a.apply(func(st session.State) (session.State, error) {
				return a.session.ToggleSelection(st, sectionID, talentID)
			}, "")
		}
		return a, nil

	case controlSelect:
		switch msg.String() {
		case "left", "right", " ", "enter":
			a.cycleSelect(ctl, msg.String() != "left")
		}
		return a, nil

	case controlText:
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		a.commitInput(ctl)
		return a, cmd
	}
	return a, nil
}

// commitInput writes the shared input's value through the session without
// re-priming the input, so the cursor stays where the user left it.
func (a *App) commitInput(ctl *control) {
	value := a.input.Value()
	sectionID, talentID := ctl.sectionID, ctl.talentID
	var next session.State
	var err error
	switch {
	case ctl.isOrder:
		next, err = a.session.SetField(a.state, ctl.order, value)
	case ctl.isSection:
		next, err = a.session.SetSectionField(a.state, sectionID, ctl.section, value)
	case ctl.isTalent:
		next, err = a.session.SetTalentField(a.state, sectionID, talentID, ctl.talent, value)
	default:
		return
	}
	if err != nil {
		a.statusMsg = err.Error()
		a.logError("%v", err)
		return
	}
	a.state = next
	a.rebuildControls()
}

// apply runs one session operation and replaces the whole state triple.
func (a *App) apply(op func(session.State) (session.State, error), note string) {
	next, err := op(a.state)
	if err != nil {
		a.statusMsg = err.Error()
		a.logError("%v", err)
		return
	}
	a.state = next
	if note != "" {
		a.statusMsg = note
		a.logInfo(note)
	}
	a.rebuildControls()
	a.loadFocusedValue()
}

func (a *App) handleSave() {
	a.state = a.session.Save(a.state)
	if a.state.Valid() {
		a.statusMsg = "Saved · document locked"
		a.logbook.SaveSucceeded(selection.Count(a.state.Doc))
		if a.store != nil {
			if err := a.store.Save(a.state); err != nil {
				a.statusMsg = fmt.Sprintf("Saved, but snapshot failed: %v", err)
				a.logError("Snapshot write failed: %v", err)
			}
		}
	} else {
		a.statusMsg = fmt.Sprintf("%d validation error(s)", len(a.state.Errors))
		a.logbook.SaveRejected(len(a.state.Errors))
	}
	a.rebuildControls()
	a.loadFocusedValue()
}

func (a *App) handleReset() {
	a.state = a.session.Reset(a.state)
	a.focus = 0
	a.statusMsg = "Form reset"
	a.logbook.FormReset()
	a.rebuildControls()
	a.loadFocusedValue()
}

func (a *App) cycleSelect(ctl *control, forward bool) {
	if len(ctl.options) == 0 {
		return
	}
	current := a.controlValue(ctl)
	idx := -1
	for i, opt := range ctl.options {
		if opt == current {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(ctl.options)
	} else if idx <= 0 {
		idx = len(ctl.options) - 1
	} else {
		idx--
	}
	a.setControlValue(ctl, ctl.options[idx])
}

func (a *App) setControlValue(ctl *control, value string) {
	switch {
	case ctl.isOrder:
		field := ctl.order
		a.apply(func(st session.State) (session.State, error) {
			return a.session.SetField(st, field, value)
		}, "")
	case ctl.isSection:
		sectionID, field := ctl.sectionID, ctl.section
		a.apply(func(st session.State) (session.State, error) {
			return a.session.SetSectionField(st, sectionID, field, value)
		}, "")
	case ctl.isTalent:
		sectionID, talentID, field := ctl.sectionID, ctl.talentID, ctl.talent
		a.apply(func(st session.State) (session.State, error) {
			return a.session.SetTalentField(st, sectionID, talentID, field, value)
		}, "")
	}
}

func (a *App) controlValue(ctl *control) string {
	doc := a.state.Doc
	switch {
	case ctl.isOrder:
		switch ctl.order {
		case document.FieldClientName:
			return doc.ClientName
		case document.FieldOrderType:
			return string(doc.OrderType)
		case document.FieldOrderNo:
			return doc.OrderNo
		case document.FieldReceivedOn:
			return doc.ReceivedOn
		case document.FieldReceivedFromName:
			return doc.ReceivedFromName
		case document.FieldReceivedFromEmail:
			return doc.ReceivedFromEmail
		case document.FieldStartDate:
			return doc.StartDate
		case document.FieldEndDate:
			return doc.EndDate
		case document.FieldBudget:
			return doc.Budget
		case document.FieldCurrency:
			return doc.Currency
		}
	case ctl.isSection:
		if sec, err := doc.Section(ctl.sectionID); err == nil {
			if ctl.section == document.SectionJobTitle {
				return sec.JobTitle
			}
			return sec.JobID
		}
	case ctl.isTalent || ctl.isToggle:
		if talent, err := doc.Talent(ctl.sectionID, ctl.talentID); err == nil {
			switch ctl.talent {
			case document.TalentContractDuration:
				return talent.ContractDuration
			case document.TalentBillRate:
				return talent.BillRate
			case document.TalentCurrency:
				return talent.Currency
			case document.TalentStandardTimeBR:
				return talent.StandardTimeBR
			case document.TalentStandardCurrency:
				return talent.StandardCurrency
			case document.TalentOverTimeBR:
				return talent.OverTimeBR
			case document.TalentOverCurrency:
				return talent.OverCurrency
			}
		}
	}
	return ""
}

func (a *App) moveFocus(delta int) {
	if len(a.controls) == 0 {
		return
	}
	a.focus = (a.focus + delta + len(a.controls)) % len(a.controls)
	a.loadFocusedValue()
}

func (a *App) focused() *control {
	if a.focus < 0 || a.focus >= len(a.controls) {
		return nil
	}
	return &a.controls[a.focus]
}

func (a *App) focusedSectionID() string {
	if ctl := a.focused(); ctl != nil {
		return ctl.sectionID
	}
	return ""
}

// loadFocusedValue primes the shared text input with the focused field's
// current value.
func (a *App) loadFocusedValue() {
	ctl := a.focused()
	if ctl == nil || ctl.kind != controlText {
		a.input.Blur()
		return
	}
	a.input.SetValue(a.controlValue(ctl))
	a.input.CursorEnd()
	a.input.Focus()
}

// rebuildControls recomputes the focus order from the current document.
func (a *App) rebuildControls() {
	cat := a.catalog
	clientIDs, clientLabels := optionLists(cat.Clients)
	typeIDs, typeLabels := optionLists(cat.OrderTypes)

	controls := []control{
		{kind: controlSelect, label: "Client Name", options: clientIDs, labels: clientLabels,
			isOrder: true, order: document.FieldClientName, errKey: document.FieldClientName.Key()},
		{kind: controlSelect, label: "Purchase Order Type", options: typeIDs, labels: typeLabels,
			isOrder: true, order: document.FieldOrderType, errKey: document.FieldOrderType.Key()},
		{kind: controlText, label: "Purchase Order No",
			isOrder: true, order: document.FieldOrderNo, errKey: document.FieldOrderNo.Key()},
		{kind: controlText, label: "Received On", unit: "YYYY-MM-DD",
			isOrder: true, order: document.FieldReceivedOn, errKey: document.FieldReceivedOn.Key()},
		{kind: controlText, label: "Received From",
			isOrder: true, order: document.FieldReceivedFromName, errKey: document.FieldReceivedFromName.Key()},
		{kind: controlText, label: "Received From Email ID",
			isOrder: true, order: document.FieldReceivedFromEmail, errKey: document.FieldReceivedFromEmail.Key()},
		{kind: controlText, label: "PO Start Date", unit: "YYYY-MM-DD",
			isOrder: true, order: document.FieldStartDate, errKey: document.FieldStartDate.Key()},
		{kind: controlText, label: "PO End Date", unit: "YYYY-MM-DD",
			isOrder: true, order: document.FieldEndDate, errKey: document.FieldEndDate.Key()},
		{kind: controlText, label: "Budget",
			isOrder: true, order: document.FieldBudget, errKey: document.FieldBudget.Key()},
		{kind: controlSelect, label: "Currency", options: cat.Currencies, labels: cat.Currencies,
			isOrder: true, order: document.FieldCurrency},
	}
	for i := range controls {
		if controls[i].isOrder {
			controls[i].required = validate.FieldRequired(controls[i].order)
		}
	}

	for _, section := range a.state.Doc.Sections {
		controls = append(controls,
			control{kind: controlSelect, label: "Job Title/REQ Name", options: cat.JobTitles, labels: cat.JobTitles,
				isSection: true, sectionID: section.ID, section: document.SectionJobTitle, required: true},
			control{kind: controlText, label: "Job ID/REQ ID",
				isSection: true, sectionID: section.ID, section: document.SectionJobID, required: true},
		)
		if !section.Expanded {
			continue
		}
		for _, talent := range section.Talents {
			controls = append(controls, control{
				kind: controlCheck, label: talent.Name, isToggle: true,
				sectionID: section.ID, talentID: talent.ID,
			})
			talentControls := []struct {
				field document.TalentField
				label string
				sel   bool
				unit  string
			}{
				{document.TalentContractDuration, "Contract Duration", false, "Months"},
				{document.TalentBillRate, "Bill Rate", false, "/hr"},
				{document.TalentCurrency, "Currency", true, ""},
				{document.TalentStandardTimeBR, "Standard Time BR", false, "/hr"},
				{document.TalentStandardCurrency, "Currency", true, ""},
				{document.TalentOverTimeBR, "Over Time BR", false, "/hr"},
				{document.TalentOverCurrency, "Currency", true, ""},
			}
			for _, tc := range talentControls {
				ctl := control{
					label:     tc.label,
					isTalent:  true,
					sectionID: section.ID,
					talentID:  talent.ID,
					talent:    tc.field,
					errKey:    validate.TalentKey(talent.ID, tc.field),
					required:  validate.TalentFieldRequired(talent, tc.field),
					unit:      tc.unit,
				}
				if tc.sel {
					ctl.kind = controlSelect
					ctl.options = cat.Currencies
					ctl.labels = cat.Currencies
				} else {
					ctl.kind = controlText
				}
				controls = append(controls, ctl)
			}
		}
	}

	a.controls = controls
	if a.focus >= len(a.controls) {
		a.focus = len(a.controls) - 1
	}
	if a.focus < 0 {
		a.focus = 0
	}
}

func optionLists(options []catalog.Option) ([]string, []string) {
	ids := make([]string, len(options))
	labels := make([]string, len(options))
	for i, opt := range options {
		ids[i] = opt.ID
		labels[i] = opt.Label
	}
	return ids, labels
}

// View renders the whole form.
func (a *App) View() string {
	var b strings.Builder

	mode := "New"
	if a.state.Mode == session.ModeLocked {
		mode = "View"
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("Purchase Order | %s", mode)))
	if a.state.Mode == session.ModeLocked {
		b.WriteString("  " + lockedStyle.Render("● saved"))
	}
	b.WriteString("\n\n")

	idx := 0
	for ; idx < len(a.controls) && a.controls[idx].isOrder; idx++ {
		b.WriteString(a.renderControl(idx))
		b.WriteString("\n")
	}

	b.WriteString("\n" + titleStyle.Render("Talent Detail") + "\n")
	for _, section := range a.state.Doc.Sections {
		var sb strings.Builder
		for ; idx < len(a.controls) && a.controls[idx].sectionID == section.ID; idx++ {
			sb.WriteString(a.renderControl(idx))
			sb.WriteString("\n")
		}
		if !section.Expanded {
			sb.WriteString(mutedStyle.Render(fmt.Sprintf("  … %d talent(s) collapsed", len(section.Talents))))
			sb.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(strings.TrimRight(sb.String(), "\n")))
		b.WriteString("\n")
	}

	if msg, ok := a.state.Errors[validate.KeyTalentSelection]; ok {
		b.WriteString(bannerStyle.Render("⚠ " + msg))
		b.WriteString("\n")
	}

	b.WriteString("\n" + a.renderFooter())
	if logPanel := a.renderLogPanel(); logPanel != "" {
		b.WriteString("\n" + logPanel)
	}
	return b.String()
}

func (a *App) renderControl(idx int) string {
	ctl := a.controls[idx]
	focused := idx == a.focus

	label := ctl.label
	if ctl.required {
		label += requiredStyle.Render(" *")
	}

	value := a.controlValue(&ctl)
	switch ctl.kind {
	case controlSelect:
		value = a.displayLabel(&ctl, value)
		if value == "" {
			value = mutedStyle.Render("‹select›")
		} else if focused && a.state.Mode == session.ModeEditable {
			value = "◂ " + value + " ▸"
		}
	case controlCheck:
		mark := "[ ]"
		if talent, err := a.state.Doc.Talent(ctl.sectionID, ctl.talentID); err == nil && talent.Selected {
			mark = "[x]"
		}
		value = mark
	case controlText:
		if focused && a.state.Mode == session.ModeEditable {
			value = a.input.View()
		} else if value == "" {
			value = mutedStyle.Render("‹empty›")
		}
	}
	if ctl.unit != "" && ctl.kind == controlText {
		value += " " + mutedStyle.Render(ctl.unit)
	}

	style := labelStyle
	if focused {
		style = focusStyle
	}
	line := fmt.Sprintf("%s %s: %s", cursorFor(focused), style.Render(label), value)
	if ctl.isTalent || ctl.isToggle {
		line = "  " + line
	}
	if ctl.errKey != "" {
		if msg, ok := a.state.Errors[ctl.errKey]; ok {
			line += "\n    " + errorStyle.Render("✗ "+msg)
		}
	}
	return line
}

func (a *App) displayLabel(ctl *control, value string) string {
	for i, opt := range ctl.options {
		if opt == value && i < len(ctl.labels) {
			return ctl.labels[i]
		}
	}
	return value
}

func (a *App) renderFooter() string {
	var hints string
	if a.state.Mode == session.ModeLocked {
		hints = "e edit (reset)    ctrl+r reset    q quit"
	} else {
		hints = "tab/↑↓ move    space toggle    ←→ choose    ctrl+s save    ctrl+r reset    ctrl+a add section    ctrl+d drop section    ctrl+x drop talent    ctrl+e collapse"
	}
	footer := mutedStyle.Render(hints)
	if a.statusMsg != "" {
		footer = a.statusMsg + "\n" + footer
	}
	return footer
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines := a.logbook.Tail(4)
	if len(lines) == 0 {
		return ""
	}
	return mutedStyle.Render(strings.Join(lines, "\n"))
}

func cursorFor(focused bool) string {
	if focused {
		return "›"
	}
	return " "
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook != nil {
		a.logbook.Info(format, args...)
	}
}

func (a *App) logError(format string, args ...any) {
	if a.logbook != nil {
		a.logbook.Error(format, args...)
	}
}
