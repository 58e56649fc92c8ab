package services

import "errors"

// Conditions handlers map to HTTP status codes. Everything else surfaces
// as a wrapped store failure and becomes a 500.
var (
	ErrEmailInUse       = errors.New("email already in use")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordTooShort = errors.New("password too short")
	ErrEmptyName        = errors.New("name is required")
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongPassword    = errors.New("wrong password")

	ErrCodeNotFound = errors.New("invite code not found")
	ErrSelfPair     = errors.New("cannot pair with yourself")
	ErrNoCouple     = errors.New("user is not in a couple")

	ErrEmptyText          = errors.New("text is required")
	ErrSharedWishNoCouple = errors.New("shared wish requires a couple")
	ErrNotWishOwner       = errors.New("wish belongs to someone else")
)

// userMessages maps service errors to the messages the frontend shows.
// The UI is Russian, so the table is too; unmapped errors fall back to a
// generic message.
var userMessages = map[error]string{
	ErrEmailInUse:       "Этот email уже используется",
	ErrInvalidEmail:     "Некорректный email адрес",
	ErrPasswordTooShort: "Пароль должен содержать минимум 6 символов",
	ErrEmptyName:        "Укажите имя",
	ErrUserNotFound:     "Пользователь с таким email не найден",
	ErrWrongPassword:    "Неверный пароль",
	ErrCodeNotFound:     "Код приглашения не найден",
	ErrSelfPair:         "Нельзя подключиться к самому себе",
}

// UserMessage translates a service error into the localized text shown to
// the user.
func UserMessage(err error) string {
	for sentinel, message := range userMessages {
		if errors.Is(err, sentinel) {
			return message
		}
	}
	return "Произошла ошибка. Попробуйте ещё раз"
}
