// Package models содержит доменную модель пользователя системы,
// включающую учётные данные, хэш пароля и счётчик посещений.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int    // Уникальный идентификатор пользователя, назначается базой данных
	Username     string // Имя пользователя (уникальное)
	PasswordHash string // Хэш пароля пользователя, не покидает границу хранилища и сервиса
	Visits       int    // Счётчик успешных аутентифицированных запросов
}

// UserUpdate описывает частичное обновление пользователя.
// Поля-указатели: nil означает «поле не меняется». Набор обновляемых
// колонок фиксирован, запросы к базе не собираются динамически.
type UserUpdate struct {
	Username     *string
	PasswordHash *string
}

// IsEmpty сообщает, что ни одно поле не задано.
func (u UserUpdate) IsEmpty() bool {
	return u.Username == nil && u.PasswordHash == nil
}
