// Package jsonfile persiste cada colección como un documento JSON plano en
// disco. Cada operación es un ciclo load-mutate-save del documento completo,
// serializado con un mutex por documento: dos escrituras concurrentes no se
// pisan entre sí dentro del proceso.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrCorrupted indica que el archivo existe pero no es JSON válido.
// No se reemplaza en silencio por un default vacío: el caller decide.
// Los repos lo propagan sin tocarlo; no-encontrado viaja como el
// ErrNotFound del dominio correspondiente.
var ErrCorrupted = errors.New("stored document is corrupted")

// document es un archivo JSON con acceso serializado por su dueño (el repo).
type document struct {
	path string
}

// load decodifica el archivo en v. Archivo inexistente deja v como está
// (default vacío); archivo ilegible o JSON inválido es ErrCorrupted.
func (d *document) load(v any) error {
	b, err := os.ReadFile(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: %s: %v", ErrCorrupted, d.path, err)
	}
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupted, d.path, err)
	}
	return nil
}

func (d *document) save(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", d.path, err)
	}
	if err := os.WriteFile(d.path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", d.path, err)
	}
	return nil
}
