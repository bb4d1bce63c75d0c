package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/datefeatures/internal/calendar"
)

type DateRangeFormModel struct {
	Start string
	End   string
}

func validateDate(s string) error {
	_, err := calendar.ParseDate(s)
	if err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

// NewDateRangeForm asks for the range to browse. Fields already filled in are
// shown as defaults.
func NewDateRangeForm(fm *DateRangeFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Start date").
				Placeholder("2024-01-01").
				Value(&fm.Start).
				Validate(validateDate),
			huh.NewInput().
				Title("End date").
				Placeholder("2024-12-31").
				Value(&fm.End).
				Validate(func(s string) error {
					if err := validateDate(s); err != nil {
						return err
					}
					start, err := calendar.ParseDate(fm.Start)
					if err != nil {
						return nil
					}
					end, _ := calendar.ParseDate(s)
					if end.Before(start) {
						return errors.New("end date must not be before start date")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// Range parses the form values.
func (fm DateRangeFormModel) Range() (calendar.Date, calendar.Date, error) {
	start, err := calendar.ParseDate(fm.Start)
	if err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	end, err := calendar.ParseDate(fm.End)
	if err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	return start, end, nil
}

// PromptDateRange fills in missing dates interactively. When both are given
// no form is shown.
func PromptDateRange(start, end string) (calendar.Date, calendar.Date, error) {
	fm := DateRangeFormModel{Start: strings.TrimSpace(start), End: strings.TrimSpace(end)}
	if fm.Start == "" || fm.End == "" {
		if err := NewDateRangeForm(&fm).Run(); err != nil {
			return calendar.Date{}, calendar.Date{}, err
		}
	}
	return fm.Range()
}
