package tui

import "github.com/ebenmoss/remedy/internal/domain"

type CardFieldConfig struct {
	ShowOwner      bool
	ShowPriority   bool
	ShowDueDate    bool
	ShowCost       bool
	ShowRatingBump bool
	ShowMentions   bool
}

type Option func(*Model)

func DefaultCardFieldConfig() CardFieldConfig {
	return CardFieldConfig{
		ShowOwner:      true,
		ShowPriority:   true,
		ShowDueDate:    true,
		ShowCost:       true,
		ShowRatingBump: false,
		ShowMentions:   true,
	}
}

func WithCardFieldConfig(cfg CardFieldConfig) Option {
	return func(m *Model) {
		m.cardFields = cfg
	}
}

func WithConfirmDelete(confirm bool) Option {
	return func(m *Model) {
		m.confirmDelete = confirm
	}
}

func WithOwners(roster domain.Roster) Option {
	return func(m *Model) {
		if roster.Len() > 0 {
			m.owners = roster
		}
	}
}

func WithKeyOverrides(overrides KeyOverrides) Option {
	return func(m *Model) {
		m.keys.apply(overrides)
	}
}

// WithClipboard replaces the copy-to-clipboard hook, mainly for tests.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		if write != nil {
			m.clipboardWrite = write
		}
	}
}
