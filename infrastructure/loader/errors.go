package loader

import (
	"errors"
	"fmt"
)

// UnreadableSourceError indica que um arquivo de origem não pôde ser lido.
// Fatal para a execução inteira: nenhuma saída parcial é produzida para
// dados que o núcleo nunca recebeu.
type UnreadableSourceError struct {
	Path string
	Err  error
}

// Error implementa a interface error
func (e *UnreadableSourceError) Error() string {
	return fmt.Sprintf("arquivo de origem ilegível %q: %v", e.Path, e.Err)
}

// Unwrap retorna o erro subjacente
func (e *UnreadableSourceError) Unwrap() error {
	return e.Err
}

// IsUnreadableSource verifica se o erro é um UnreadableSourceError
func IsUnreadableSource(err error) bool {
	var use *UnreadableSourceError
	return errors.As(err, &use)
}
