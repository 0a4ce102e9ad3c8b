package seating

// Counts is derived from seat status on every read and never stored.
type Counts struct {
	Available   int
	Unavailable int
	Occupied    int
	Total       int
}

func CountSeats(seats []*Seat) Counts {
	c := Counts{Total: len(seats)}
	for _, s := range seats {
		switch s.status {
		case SeatAvailable:
			c.Available++
		case SeatUnavailable:
			c.Unavailable++
		case SeatReserved, SeatCheckedIn:
			c.Occupied++
		}
	}
	return c
}

// Summary aggregates every table in the venue.
type Summary struct {
	Tables int
	Seats  int
	Counts Counts
}

func Summarize(tables []*Table) Summary {
	s := Summary{Tables: len(tables)}
	for _, t := range tables {
		c := t.Counts()
		s.Seats += t.SeatCount()
		s.Counts.Available += c.Available
		s.Counts.Unavailable += c.Unavailable
		s.Counts.Occupied += c.Occupied
		s.Counts.Total += c.Total
	}
	return s
}
