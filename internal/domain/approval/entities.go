package approval

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("approval request not found")
	ErrInvalidState = errors.New("approval request is not in a state that allows this transition")
	ErrUnauthorized = errors.New("staff not authorized for this approval action")
	ErrValidation   = errors.New("validation failed")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Terminal reports whether no further decision is possible without an
// explicit reopen.
func (s Status) Terminal() bool { return s == StatusApproved || s == StatusRejected }

// EntityType is the closed set of business objects an approval request can
// gate. Codes are stable wire values; adding a type means adding a constant
// here, never free text.
type EntityType int

const (
	EntityLoan EntityType = iota
	EntitySupplierTransaction
	EntityAccount
	EntityLoanTopUp
)

func (e EntityType) Valid() bool {
	return e >= EntityLoan && e <= EntityLoanTopUp
}

func (e EntityType) Slug() string {
	switch e {
	case EntityLoan:
		return "loan"
	case EntitySupplierTransaction:
		return "supplier_transaction"
	case EntityAccount:
		return "account"
	case EntityLoanTopUp:
		return "loan_topup"
	}
	return "unknown"
}

func ParseEntityType(code int) (EntityType, error) {
	e := EntityType(code)
	if !e.Valid() {
		return 0, fmt.Errorf("%w: unknown entity type code %d", ErrValidation, code)
	}
	return e, nil
}

// Decision is the wire code a processing staff member submits.
type Decision int

const (
	DecisionApprove Decision = 1
	DecisionReject  Decision = 2
)

func (d Decision) Valid() bool { return d == DecisionApprove || d == DecisionReject }

// Outcome maps a decision to the status it commits.
func (d Decision) Outcome() Status {
	if d == DecisionReject {
		return StatusRejected
	}
	return StatusApproved
}

// ProcessPrivilege is the capability a staff member must hold to decide
// requests of the given entity type. Checked server-side on every call;
// client-side privilege flags are a UX hint only.
func ProcessPrivilege(e EntityType) string { return "approval:process:" + e.Slug() }

// ReopenPrivilege gates resetting a decided request back to pending.
func ReopenPrivilege(e EntityType) string { return "approval:reopen:" + e.Slug() }

// MetadataEntry is one key/value figure attached to a request. Entries keep
// their insertion order, which a plain map would lose.
type MetadataEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Metadata []MetadataEntry

// Expected metadata keys. The bag is ordered but not free-form: screens
// render these keys per entity type, so they are a closed set.
const (
	MetaTotalCost       = "total_cost"
	MetaEquityAmount    = "equity_amount"
	MetaFinancedCost    = "financed_cost"
	MetaMinimumPrice    = "minimum_financing_price"
	MetaEstimatedProfit = "estimated_profit"
	MetaTenorMonths     = "tenor_months"
	MetaAmount          = "amount"
	MetaSupplierName    = "supplier_name"
	MetaAccountNumber   = "account_number"
	MetaTopUpAmount     = "topup_amount"
)

func (m Metadata) Get(key string) (string, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Value serializes the ordered bag as a JSON array for the json column.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *Metadata) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("metadata: cannot scan %T", src)
	}
	if len(b) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(b, m)
}

// Table: approval_requests
type Request struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (32-char lowercase hex)
	RequestID   string     `gorm:"column:request_id;type:char(32);not null;uniqueIndex:ux_approval_requests_request_id"`
	EntityType  EntityType `gorm:"column:entity_type;not null;index:idx_approval_requests_entity"`
	EntityID    string     `gorm:"column:entity_id;type:char(32);not null;index:idx_approval_requests_entity"`
	RequestedBy string     `gorm:"column:requested_by;type:char(32);not null;index"`
	// Set once at creation, never updated afterwards.
	RequestDate time.Time `gorm:"column:request_date;not null;index"`
	Status      Status    `gorm:"column:status;type:varchar(16);not null;default:'pending';index"`
	Notes       string    `gorm:"column:notes;type:text"`
	Metadata    Metadata  `gorm:"column:metadata;type:json"`

	History []Action `gorm:"foreignKey:ApprovalRequestID;references:ID"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Request) TableName() string { return "approval_requests" }

// Table: approval_actions — append-only, never edited or deleted.
type Action struct {
	ID                uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	ApprovalRequestID uint64 `gorm:"column:approval_request_id;not null;index"`
	// 1-based position within the request's history; equals insertion order.
	Level      int       `gorm:"column:level;not null"`
	ActionedBy string    `gorm:"column:actioned_by;type:char(32);not null;index"`
	ActionDate time.Time `gorm:"column:action_date;not null"`
	Status     Status    `gorm:"column:status;type:varchar(16);not null"`
	Comments   string    `gorm:"column:comments;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Action) TableName() string { return "approval_actions" }

// StaffAction is the cross-request audit row: one action joined with the
// public id of the request it decided.
type StaffAction struct {
	RequestID  string    `gorm:"column:request_id"`
	Level      int       `gorm:"column:level"`
	ActionedBy string    `gorm:"column:actioned_by"`
	ActionDate time.Time `gorm:"column:action_date"`
	Status     Status    `gorm:"column:status"`
	Comments   string    `gorm:"column:comments"`
}
