package ports

import (
	"context"
	"errors"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
)

// ErrFileNotFound é retornado pelo FileStore para nomes inexistentes ou inválidos
var ErrFileNotFound = errors.New("file not found")

// StatementRenderer serializa um extrato (CSV em produção)
type StatementRenderer interface {
	Render(statement *entities.Statement) ([]byte, error)
	Extension() string
}

// FileStore guarda os arquivos gerados no diretório público
type FileStore interface {
	Save(ctx context.Context, name string, data []byte) error
	// Path resolve o caminho no disco; nomes com separadores ou inexistentes retornam ErrFileNotFound
	Path(name string) (string, error)
}
