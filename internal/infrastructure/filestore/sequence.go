package filestore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// nextID reserva el siguiente ID de una colección. El valor guardado en secuencias.json
// es la marca más alta entregada, así un ID borrado nunca se vuelve a asignar.
// Debe llamarse con el lock de escritura tomado.
func nextID(dir, collection string, maxExisting int) (int, error) {
	seqs, err := readSequences(dir)
	if err != nil {
		return 0, err
	}
	next := seqs[collection]
	if maxExisting > next {
		next = maxExisting
	}
	next++
	seqs[collection] = next
	data, err := json.MarshalIndent(seqs, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("codificar %s.json: %w", sequencesFile, err)
	}
	if err := writeAtomic(collectionPath(dir, sequencesFile), data); err != nil {
		return 0, err
	}
	return next, nil
}

func readSequences(dir string) (map[string]int, error) {
	seqs := make(map[string]int)
	data, err := os.ReadFile(collectionPath(dir, sequencesFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return seqs, nil
		}
		return nil, fmt.Errorf("leer %s.json: %w", sequencesFile, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return seqs, nil
	}
	if err := json.Unmarshal(data, &seqs); err != nil {
		return nil, fmt.Errorf("decodificar %s.json: %w", sequencesFile, err)
	}
	if seqs == nil {
		seqs = make(map[string]int)
	}
	return seqs, nil
}
