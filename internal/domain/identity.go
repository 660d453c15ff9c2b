package domain

// Tipos de actor autenticado.
const (
	KindAdmin     = "admin"     // dueño del tenant (o admin primario)
	KindPersonnel = "personnel" // personal de campo del tenant
)

// Identity identifica al actor de una petición una sola vez, en el resolver.
// Los handlers y casos de uso la reciben explícita; nunca se vuelve a
// inspeccionar headers para deducir el tipo de actor.
type Identity struct {
	Kind     string // KindAdmin | KindPersonnel
	ActorID  string // ID del admin o del personal
	TenantID string // tenant al que pertenece todo acceso a datos
}

// IsAdmin indica si el actor es el admin del tenant.
func (i Identity) IsAdmin() bool { return i.Kind == KindAdmin }

// IsPersonnel indica si el actor es personal de campo.
func (i Identity) IsPersonnel() bool { return i.Kind == KindPersonnel }
