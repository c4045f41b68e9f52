package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// FieldErrors ошибки валидации формы: поле -> сообщение.
type FieldErrors map[string]string

// Refresher список, который надо перечитать после успешной мутации.
type Refresher interface {
	Refetch(ctx context.Context) error
}

// Entity хуки конкретной сущности для Controller.
type Entity[E any, F any] struct {
	Blank      func() F
	FromRecord func(E) F
	Validate   func(F) FieldErrors
	Create     func(ctx context.Context, f F) error
	Update     func(ctx context.Context, rec E, f F) error
	Delete     func(ctx context.Context, id int64) error
}

// Messages тексты уведомлений.
type Messages struct {
	Created      string
	Updated      string
	Deleted      string
	CreateFailed string
	UpdateFailed string
	DeleteFailed string
}

// MessagesFor стандартные тексты для сущности мужского рода ("Insumo", "Produto").
func MessagesFor(name string) Messages {
	lower := strings.ToLower(name)
	return Messages{
		Created:      name + " cadastrado com sucesso!",
		Updated:      name + " atualizado com sucesso!",
		Deleted:      name + " excluído com sucesso!",
		CreateFailed: fmt.Sprintf("Erro ao cadastrar %s.", lower),
		UpdateFailed: fmt.Sprintf("Erro ao atualizar %s.", lower),
		DeleteFailed: fmt.Sprintf("Erro ao excluir %s.", lower),
	}
}

// Controller связывает список и форму с мутациями бэкенда.
//
// editing == nil: режим создания, иначе редактирование записи.
// После любой успешной мутации список перечитывается целиком, локально строки не правим.
type Controller[E any, F any] struct {
	entity Entity[E, F]
	msgs   Messages
	list   Refresher
	notify Notifier
	log    *slog.Logger

	open        bool
	editing     *E
	form        F
	errs        FieldErrors
	mutationErr bool
	submitting  bool
}

func NewController[E any, F any](entity Entity[E, F], msgs Messages, list Refresher, n Notifier, log *slog.Logger) *Controller[E, F] {
	if log == nil {
		log = slog.Default()
	}
	if n == nil {
		n = NotifierFunc(func(Notification) {})
	}
	return &Controller[E, F]{
		entity: entity,
		msgs:   msgs,
		list:   list,
		notify: n,
		log:    log,
		form:   entity.Blank(),
	}
}

func (c *Controller[E, F]) ModalOpen() bool          { return c.open }
func (c *Controller[E, F]) Editing() *E              { return c.editing }
func (c *Controller[E, F]) Form() *F                 { return &c.form }
func (c *Controller[E, F]) FieldErrors() FieldErrors { return c.errs }
func (c *Controller[E, F]) MutationError() bool      { return c.mutationErr }
func (c *Controller[E, F]) IsSubmitting() bool       { return c.submitting }

// ClearFieldError вызывается, когда пользователь поправил поле.
func (c *Controller[E, F]) ClearFieldError(field string) {
	delete(c.errs, field)
}

func (c *Controller[E, F]) OpenCreate() {
	c.reset()
	c.open = true
}

func (c *Controller[E, F]) OpenEdit(rec E) {
	c.reset()
	r := rec
	c.editing = &r
	c.form = c.entity.FromRecord(rec)
	c.open = true
}

// Close закрывает форму и очищает поля. Повторный вызов ничего не меняет.
func (c *Controller[E, F]) Close() {
	c.reset()
}

func (c *Controller[E, F]) reset() {
	c.open = false
	c.editing = nil
	c.form = c.entity.Blank()
	c.errs = nil
	c.mutationErr = false
	c.submitting = false
}

// Submit проверяет форму и отправляет create/update.
// Невалидная форма: (false, nil), на бэкенд ничего не уходит.
// Ошибка бэкенда: (false, err), форма остаётся открытой с введёнными данными.
func (c *Controller[E, F]) Submit(ctx context.Context) (bool, error) {
	if !c.open || c.submitting {
		return false, nil
	}
	if errs := c.entity.Validate(c.form); len(errs) > 0 {
		c.errs = errs
		return false, nil
	}
	c.errs = nil

	c.submitting = true
	var (
		err       error
		okText    string
		failText  string
		operation string
	)
	if c.editing == nil {
		operation, okText, failText = "create", c.msgs.Created, c.msgs.CreateFailed
		err = c.entity.Create(ctx, c.form)
	} else {
		operation, okText, failText = "update", c.msgs.Updated, c.msgs.UpdateFailed
		err = c.entity.Update(ctx, *c.editing, c.form)
	}
	c.submitting = false

	if err != nil {
		c.mutationErr = true
		c.log.Error("mutation failed", "op", operation, "err", err)
		c.notify.Notify(Notification{Kind: NotifyError, Text: failText})
		return false, err
	}

	c.notify.Notify(Notification{Kind: NotifySuccess, Text: okText})
	c.Close()
	c.refetch(ctx)
	return true, nil
}

// Delete вызывается только после подтверждения. При ошибке строка остаётся в списке.
func (c *Controller[E, F]) Delete(ctx context.Context, id int64) error {
	if err := c.entity.Delete(ctx, id); err != nil {
		c.log.Error("mutation failed", "op", "delete", "id", id, "err", err)
		c.notify.Notify(Notification{Kind: NotifyError, Text: c.msgs.DeleteFailed})
		return err
	}
	c.notify.Notify(Notification{Kind: NotifySuccess, Text: c.msgs.Deleted})
	c.refetch(ctx)
	return nil
}

func (c *Controller[E, F]) refetch(ctx context.Context) {
	if c.list == nil {
		return
	}
	// ошибку список держит у себя и покажет баннером
	if err := c.list.Refetch(ctx); err != nil {
		c.log.Warn("list refetch failed", "err", err)
	}
}
