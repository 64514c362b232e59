package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/itax/internal/compare"
	"github.com/rgehrsitz/itax/internal/config"
)

// Form fields, in tab order
const (
	fieldGrossIncome = iota
	fieldAge
	field80C
	field80D
	fieldHRA
	fieldOther
	fieldEmployerNPS
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Annual gross income",
	"Age",
	"Section 80C",
	"Section 80D",
	"HRA exemption",
	"Other deductions",
	"Employer NPS 80CCD(2)",
}

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Profile file to prefill from, optional
	configPath  string
	profileName string

	parentsSenior bool

	inputs []textinput.Model
	focus  int

	engine     *compare.CompareEngine
	parser     *config.InputParser
	comparison *compare.RegimeComparison

	keys keyMap
	help help.Model

	err     error
	loading bool
}

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Back   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "compare regimes")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Back, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Submit},
		{k.Back, k.Help, k.Quit},
	}
}

// NewModel creates a new application model. configPath may be empty, in which
// case the form starts blank.
func NewModel(configPath, profileName string, engine *compare.CompareEngine) Model {
	if engine == nil {
		engine = compare.NewCompareEngine(nil)
	}

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = "0"
		ti.CharLimit = 14
		ti.Width = 16
		inputs[i] = ti
	}
	inputs[fieldGrossIncome].Placeholder = "e.g. 1200000"
	inputs[fieldAge].Placeholder = "e.g. 35"
	inputs[fieldAge].CharLimit = 3
	inputs[fieldGrossIncome].Focus()

	return Model{
		currentScene: SceneForm,
		configPath:   configPath,
		profileName:  profileName,
		inputs:       inputs,
		engine:       engine,
		parser:       config.NewInputParser(),
		keys:         defaultKeyMap(),
		help:         help.New(),
		width:        80,
		height:       24,
		loading:      configPath != "",
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.configPath == "" {
		return textinput.Blink
	}
	return loadProfileCmd(m.parser, m.configPath, m.profileName)
}

// loadProfileCmd returns a command that loads the profile to prefill the form
func loadProfileCmd(parser *config.InputParser, path, name string) tea.Cmd {
	return func() tea.Msg {
		file, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		p, err := file.FindProfile(name)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ProfileLoadedMsg{Profile: p}
	}
}

// compareCmd returns a command that runs the regime comparison
func compareCmd(engine *compare.CompareEngine, parser *config.InputParser, p config.Profile) tea.Cmd {
	return func() tea.Msg {
		input, err := parser.ToTaxInput(&p)
		if err != nil {
			return ComparisonCompleteMsg{Err: err}
		}
		rc, err := engine.Compare(context.Background(), p.Name, input)
		return ComparisonCompleteMsg{Comparison: rc, Err: err}
	}
}

// profile builds a validated profile from the form values
func (m Model) profile() (config.Profile, error) {
	p := config.Profile{
		Name:          m.profileName,
		ParentsSenior: m.parentsSenior,
	}
	if p.Name == "" {
		p.Name = "interactive"
	}

	age := strings.TrimSpace(m.inputs[fieldAge].Value())
	if age == "" {
		return p, fmt.Errorf("age is required")
	}
	n, err := strconv.Atoi(age)
	if err != nil {
		return p, fmt.Errorf("age: %w", err)
	}
	p.Age = n

	amounts := []*decimal.Decimal{
		fieldGrossIncome: &p.AnnualGrossIncome,
		field80C:         &p.Deductions.Section80C,
		field80D:         &p.Deductions.Section80D,
		fieldHRA:         &p.Deductions.HRA,
		fieldOther:       &p.Deductions.OtherDeductions,
		fieldEmployerNPS: &p.Deductions.EmployerNPS,
	}
	for i, dst := range amounts {
		if dst == nil {
			continue
		}
		v, err := parseAmount(m.inputs[i].Value())
		if err != nil {
			return p, fmt.Errorf("%s: %w", strings.ToLower(fieldLabels[i]), err)
		}
		*dst = v
	}
	if !p.AnnualGrossIncome.IsPositive() {
		return p, fmt.Errorf("annual gross income is required")
	}

	if err := m.parser.ValidateProfile(&p); err != nil {
		return p, err
	}
	return p, nil
}

// fill copies a loaded profile into the form
func (m *Model) fill(p *config.Profile) error {
	input, err := m.parser.ToTaxInput(p)
	if err != nil {
		return err
	}
	m.profileName = p.Name
	m.parentsSenior = p.ParentsSenior

	d := input.Deductions
	values := [fieldCount]string{
		fieldGrossIncome: input.AnnualGrossIncome.StringFixed(0),
		fieldAge:         strconv.Itoa(p.Age),
		field80C:         d.Section80C.StringFixed(0),
		field80D:         d.Section80D.StringFixed(0),
		fieldHRA:         d.HRA.StringFixed(0),
		fieldOther:       d.OtherDeductions.Add(d.LTA).StringFixed(0),
		fieldEmployerNPS: d.EmployerNPS.StringFixed(0),
	}
	for i, v := range values {
		m.inputs[i].SetValue(v)
	}
	return nil
}

// setFocus moves the cursor to field i, wrapping around
func (m *Model) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (i + fieldCount) % fieldCount
	return m.inputs[m.focus].Focus()
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
