package events

// Type es el tipo de evento.
// @Enum competencia, exposicion, clinica, otro
type Type string

const (
	TypeCompetition Type = "competencia"
	TypeExhibition  Type = "exposicion"
	TypeClinic      Type = "clinica"
	TypeOther       Type = "otro"
)

func (t Type) Valid() bool {
	switch t {
	case TypeCompetition, TypeExhibition, TypeClinic, TypeOther:
		return true
	}
	return false
}

// Status es el estado del evento.
// @Enum programado, en_curso, finalizado, cancelado
type Status string

const (
	StatusScheduled  Status = "programado"
	StatusInProgress Status = "en_curso"
	StatusFinished   Status = "finalizado"
	StatusCancelled  Status = "cancelado"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

// Active indica si el evento todavía cuenta como próximo en el dashboard.
func (s Status) Active() bool {
	return s == StatusScheduled || s == StatusInProgress
}
