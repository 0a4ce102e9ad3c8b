package ticket

type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusUsed      Status = "USED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusUsed:
		return true
	default:
		return false
	}
}
