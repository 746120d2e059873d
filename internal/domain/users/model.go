package users

import "time"

// Band agrupa usuarios por edad. Solo se usa para presentación (colores en la UI),
// nunca para cálculo.
type Band struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Light string `json:"light"`
}

var (
	BandPurple = Band{Name: "Purple", Color: "#9B59B6", Light: "#E8DAEF"}
	BandGreen  = Band{Name: "Green", Color: "#27AE60", Light: "#D5F5E3"}
	BandYellow = Band{Name: "Yellow", Color: "#F1C40F", Light: "#FCF3CF"}
)

// ClassifyAge es total: no valida rangos, una edad <= 0 cae en la primera banda
// (la validación de edad vive en el service, antes de llegar aquí).
func ClassifyAge(age int) Band {
	switch {
	case age < 13:
		return BandPurple
	case age <= 35:
		return BandGreen
	default:
		return BandYellow
	}
}

// User es la persona a la que se le recuerdan sus medicamentos.
type User struct {
	ID   string // entero secuencial como string ("1", "2", ...)
	Name string
	Age  int

	CreatedAt time.Time
}
