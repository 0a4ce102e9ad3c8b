package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type CountsView struct {
	Available   int `json:"available"`
	Unavailable int `json:"unavailable"`
	Occupied    int `json:"occupied"`
	Total       int `json:"total"`
}

type SeatView struct {
	ID        uuid.UUID `json:"id"`
	TableID   uuid.UUID `json:"table_id"`
	Label     string    `json:"label"`
	Position  int       `json:"position"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TableView struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	DisplayName string     `json:"display_name"`
	Counts      CountsView `json:"counts"`
	Seats       []SeatView `json:"seats,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type SummaryView struct {
	Tables int        `json:"tables"`
	Seats  int        `json:"seats"`
	Counts CountsView `json:"counts"`
}

type TicketView struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TicketStatsView struct {
	Available int `json:"available"`
	Used      int `json:"used"`
	Total     int `json:"total"`
}

type AllocationView struct {
	ID         uuid.UUID `json:"id"`
	SeatID     uuid.UUID `json:"seat_id"`
	SeatLabel  string    `json:"seat_label"`
	TableID    uuid.UUID `json:"table_id"`
	TableName  string    `json:"table_name"`
	TicketCode string    `json:"ticket_code"`
	Class      string    `json:"ticket_class"`
	Status     string    `json:"status"`
}

type ReservationView struct {
	ID          uuid.UUID        `json:"id"`
	ReferenceNo string           `json:"reference_no"`
	SellerID    uuid.UUID        `json:"seller_id"`
	SellerName  string           `json:"seller_name"`
	Status      string           `json:"status"`
	Description string           `json:"description,omitempty"`
	SeatCount   int              `json:"seat_count"`
	Allocations []AllocationView `json:"allocations"`
	CreatedBy   string           `json:"created_by,omitempty"`
	UpdatedBy   string           `json:"updated_by,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type SellerView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SettingView struct {
	EventName      string    `json:"event_name"`
	Venue          string    `json:"venue,omitempty"`
	TableSize      int       `json:"table_size"`
	SeatSize       int       `json:"seat_size"`
	NoOfColumns    int       `json:"no_of_columns"`
	FontSize       int       `json:"font_size"`
	QRX            int       `json:"qr_x"`
	QRY            int       `json:"qr_y"`
	TextX          int       `json:"text_x"`
	TextY          int       `json:"text_y"`
	TicketPrefix   string    `json:"ticket_prefix"`
	NoOfDigits     int       `json:"no_of_digits"`
	MaxNoOfTickets int       `json:"max_no_of_tickets"`
	BaseImageBytes int       `json:"base_image_bytes"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type AuthorizedUserView struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	IsActive  bool       `json:"is_active"`
}

// TicketArchive is a ZIP of every ticket image of one reservation.
type TicketArchive struct {
	FileName string
	Content  []byte
}
