package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InlineCustomer datos de cliente para creación implícita junto con el trabajo.
type InlineCustomer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// JobMaterialRequest línea de material solicitada/usada.
type JobMaterialRequest struct {
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// CreateJobRequest creación de trabajo. Requiere CustomerID o Customer
// inline (se crea el cliente dentro de la misma transacción).
type CreateJobRequest struct {
	CustomerID           string               `json:"customer_id"`
	Customer             *InlineCustomer      `json:"customer,omitempty"`
	Title                string               `json:"title"`
	Description          string               `json:"description"`
	ScheduledAt          *time.Time           `json:"scheduled_at,omitempty"`
	Price                decimal.Decimal      `json:"price"`
	PersonnelIDs         []string             `json:"personnel_ids"`
	Materials            []JobMaterialRequest `json:"materials"`
	Note                 string               `json:"note"`
	MaintenanceIntervalM int                  `json:"maintenance_interval_months"`
	MaintenanceDueAt     *time.Time           `json:"maintenance_due_at,omitempty"`
	LocationLat          *decimal.Decimal     `json:"location_lat,omitempty"`
	LocationLng          *decimal.Decimal     `json:"location_lng,omitempty"`
	LocationAddress      string               `json:"location_address"`
}

// UpdateJobStatusRequest transición de estado. Materials y CollectedAmount
// solo aplican al pasar a DELIVERED.
type UpdateJobStatusRequest struct {
	Status               string               `json:"status"`
	Note                 string               `json:"note"`
	Materials            []JobMaterialRequest `json:"materials,omitempty"`
	CollectedAmount      *decimal.Decimal     `json:"collected_amount,omitempty"`
	MaintenanceIntervalM *int                 `json:"maintenance_interval_months,omitempty"`
}

// JobMaterialResponse línea de material con precio capturado.
type JobMaterialResponse struct {
	ItemID    string          `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// JobHistoryResponse entrada del historial de estados.
type JobHistoryResponse struct {
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	ActorKind string    `json:"actor_kind"`
	ActorID   string    `json:"actor_id"`
	CreatedAt time.Time `json:"created_at"`
}

// JobResponse trabajo con sus agregados.
type JobResponse struct {
	ID                   string                `json:"id"`
	TenantID             string                `json:"tenant_id"`
	CustomerID           string                `json:"customer_id"`
	Title                string                `json:"title"`
	Description          string                `json:"description,omitempty"`
	Status               string                `json:"status"`
	ScheduledAt          *time.Time            `json:"scheduled_at,omitempty"`
	StartedAt            *time.Time            `json:"started_at,omitempty"`
	DeliveredAt          *time.Time            `json:"delivered_at,omitempty"`
	ArchivedAt           *time.Time            `json:"archived_at,omitempty"`
	Price                decimal.Decimal       `json:"price"`
	CollectedAmount      decimal.Decimal       `json:"collected_amount"`
	PaymentStatus        string                `json:"payment_status"`
	MaintenanceDueAt     *time.Time            `json:"maintenance_due_at,omitempty"`
	MaintenanceIntervalM int                   `json:"maintenance_interval_months,omitempty"`
	PersonnelIDs         []string              `json:"personnel_ids,omitempty"`
	Materials            []JobMaterialResponse `json:"materials,omitempty"`
	History              []JobHistoryResponse  `json:"history,omitempty"`
	CreatedAt            time.Time             `json:"created_at"`
}
