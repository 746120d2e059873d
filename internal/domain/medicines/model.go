package medicines

import "time"

// Medicine pertenece a exactamente un usuario; el ID es secuencial por usuario.
type Medicine struct {
	ID     string
	UserID string

	// Name es solo presentación. Las mutaciones (marcar tomado, borrar)
	// direccionan por ID: dos medicamentos pueden llamarse igual.
	Name      string
	Dosage    string
	Frequency string // texto libre descriptivo, no entra en ningún cálculo

	// Times son horas del día "HH:MM" (24h), ordenadas ascendente.
	// Duplicados se conservan tal cual.
	Times []string

	// Taken registra dosis tomadas por clave "YYYY-MM-DD_HH:MM".
	// Solo se agregan entradas; nunca se quitan ni se ponen en false.
	Taken map[string]bool

	CreatedAt time.Time
}

const timeLayout = "15:04"

// TakenKey arma la clave con la que se registra una dosis tomada.
// El formato es sensible: el lookup de estado compara strings exactos.
func TakenKey(date time.Time, timeStr string) string {
	return date.Format("2006-01-02") + "_" + timeStr
}

// ValidTime reporta si s es una hora "HH:MM" válida.
func ValidTime(s string) bool {
	_, err := time.Parse(timeLayout, s)
	return err == nil
}
