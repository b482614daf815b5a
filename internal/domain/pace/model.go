package pace

// Unit conversions
const (
	MetersPerMile = 1609
	FiveKMeters   = 5000
)

// MileRaceFactor scales mile pace at 5K effort to mile race pace.
const MileRaceFactor = 0.89

// Distance is a target distance and the ratio of its race pace to mile race pace.
type Distance struct {
	Label   string
	Divisor float64
}

// distances is the fixed training-pace table, in display order.
// The leading 5K entry echoes the input and has no divisor.
var distances = []Distance{
	{Label: "800", Divisor: 1.13},
	{Label: "Mile", Divisor: 1.00},
	{Label: "3K", Divisor: 0.94},
	{Label: "5K", Divisor: 0.89},
	{Label: "6K", Divisor: 0.88},
	{Label: "8K", Divisor: 0.87},
	{Label: "10K", Divisor: 0.86},
	{Label: "vLT", Divisor: 0.835},
	{Label: "Half marathon", Divisor: 0.81},
	{Label: "Marathon", Divisor: 0.77},
}

// Distances returns a copy of the derived distances in display order.
func Distances() []Distance {
	out := make([]Distance, len(distances))
	copy(out, distances)
	return out
}

// Entry is one labelled pace in a Table.
type Entry struct {
	Label string
	Pace  string
}

// Table is an ordered list of paces. Order mirrors the fixed distance list.
type Table []Entry

// Labels returns the entry labels in order.
func (t Table) Labels() []string {
	out := make([]string, len(t))
	for i, e := range t {
		out[i] = e.Label
	}
	return out
}

// Paces returns the formatted paces in order.
func (t Table) Paces() []string {
	out := make([]string, len(t))
	for i, e := range t {
		out[i] = e.Pace
	}
	return out
}

// MilePace estimates mile race pace in seconds from a 5K time in seconds.
func MilePace(fiveK int) float64 {
	fiveKMilePace := float64(fiveK) * (float64(MetersPerMile) / float64(FiveKMeters))
	return fiveKMilePace * MileRaceFactor
}

// ComputePaces derives training paces for every distance from a 5K time.
// PRE: fiveK >= 0 (seconds)
// POST: Returns len(Distances())+1 entries; the first is the 5K input formatted verbatim
func ComputePaces(fiveK int) Table {
	milePace := MilePace(fiveK)

	table := make(Table, 0, len(distances)+1)
	table = append(table, Entry{Label: "5K", Pace: FormatDuration(float64(fiveK))})
	for _, d := range distances {
		table = append(table, Entry{Label: d.Label, Pace: FormatDuration(milePace / d.Divisor)})
	}
	return table
}
