package calendar

import "fmt"

// HolidayName identifies one of the Norwegian public holidays. The zero value
// means "no holiday". Declaration order is the display order.
type HolidayName int

const (
	NoHoliday HolidayName = iota
	Paskedag
	Palmesondag
	Skjaertorsdag
	AndrePaskedag
	Langfredag
	KristiHimmelfartsdag
	Pinsedag
	AndrePinsedag
	Nyttarsdag
	Arbeiderenesdag
	Grunnlovsdag
	Juledag
	Andrejuledag
)

var holidayNames = [...]string{
	NoHoliday:            "",
	Paskedag:             "påskedag",
	Palmesondag:          "palmesøndag",
	Skjaertorsdag:        "skjærtorsdag",
	AndrePaskedag:        "andre_påskedag",
	Langfredag:           "langfredag",
	KristiHimmelfartsdag: "kristi_himmelfartsdag",
	Pinsedag:             "pinsedag",
	AndrePinsedag:        "andre_pinsedag",
	Nyttarsdag:           "nyttårsdag",
	Arbeiderenesdag:      "arbeiderenesdag",
	Grunnlovsdag:         "grunnlovsdag",
	Juledag:              "juledag",
	Andrejuledag:         "andrejuledag",
}

// AllHolidayNames returns the 13 holiday names in display order.
func AllHolidayNames() []HolidayName {
	names := make([]HolidayName, 0, len(holidayNames)-1)
	for n := Paskedag; n <= Andrejuledag; n++ {
		names = append(names, n)
	}
	return names
}

func (n HolidayName) String() string {
	if !n.Valid() && n != NoHoliday {
		return fmt.Sprintf("HolidayName(%d)", int(n))
	}
	return holidayNames[n]
}

// Valid reports whether n names an actual holiday.
func (n HolidayName) Valid() bool {
	return n >= Paskedag && n <= Andrejuledag
}

// Order is the 0-based display rank of the holiday, or -1 for NoHoliday.
func (n HolidayName) Order() int {
	if !n.Valid() {
		return -1
	}
	return int(n) - 1
}

// ParseHolidayName maps an identifier such as "juledag" back to its HolidayName.
func ParseHolidayName(s string) (HolidayName, error) {
	for _, n := range AllHolidayNames() {
		if holidayNames[n] == s {
			return n, nil
		}
	}
	return NoHoliday, fmt.Errorf("unknown holiday name: %q", s)
}

func (n HolidayName) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *HolidayName) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*n = NoHoliday
		return nil
	}
	parsed, err := ParseHolidayName(string(b))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
