package ui

import "time"

type Timer interface {
	Stop() bool
}

// Clock источник таймеров. Колбэк должен выполняться в том же цикле событий,
// что и остальные вызовы ui, поэтому реализацию даёт владелец цикла (бот).
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}
