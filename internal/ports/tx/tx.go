// Package tx define el puerto de transacciones usado por los transaction scripts
// (registro de historia clínica, emisión de factura).
package tx

import "context"

// Runner ejecuta fn dentro de una transacción. Los repos leen la tx del ctx.
type Runner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RunnerFunc adapta una función a Runner.
type RunnerFunc func(ctx context.Context, fn func(ctx context.Context) error) error

func (f RunnerFunc) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return f(ctx, fn)
}

type direct struct{}

func (direct) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Direct ejecuta fn sin transacción (store in-memory).
var Direct Runner = direct{}

// Atomic dice si r deshace las escrituras de fn cuando fn falla.
// Con Direct el llamador debe compensar.
func Atomic(r Runner) bool {
	_, plain := r.(direct)
	return !plain
}
