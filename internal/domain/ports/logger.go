package ports

// Logger é o logger estruturado usado em todas as camadas.
// args são pares chave/valor; With devolve um logger com campos fixos.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	With(args ...any) Logger
}
