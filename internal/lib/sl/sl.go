// Package sl содержит небольшие помощники для структурированного
// логирования через slog.
package sl

import "log/slog"

// Err оборачивает ошибку в атрибут с ключом "error", чтобы все записи
// об ошибках в логе имели одинаковую форму:
//
//	log.Error("failed to save user", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
