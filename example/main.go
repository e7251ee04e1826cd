package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/limpo1989/dynarray"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if err := run(os.Stdout, logger); err != nil {
		logger.Error("example failed", "error", err)
		os.Exit(1)
	}
}

func run(w io.Writer, logger *slog.Logger) error {
	al := dynarray.NewAllocator(dynarray.WithLogger(logger), dynarray.WithLimit(1<<10))

	// List construction and checked access
	arr, err := dynarray.ArrayOf(al, 5, 4, 3, 2, 1)
	if err != nil {
		return fmt.Errorf("construct array: %w", err)
	}
	defer arr.Free()

	v, err := arr.At(2)
	if err != nil {
		return fmt.Errorf("at(2): %w", err)
	}
	fmt.Fprintln(w, "at(2):", v)

	if _, err = arr.At(arr.Len()); !errors.Is(err, dynarray.ErrIndexOutOfRange) {
		return fmt.Errorf("at(len): expected out of range, got %v", err)
	}
	fmt.Fprintln(w, "at(len):", err)

	// Resize past capacity, then back within it
	if err = arr.Resize(7); err != nil {
		return fmt.Errorf("resize(7): %w", err)
	}
	fmt.Fprintln(w, "resize(7):", arr.Values(), "cap", arr.Cap())
	if err = arr.Resize(3); err != nil {
		return fmt.Errorf("resize(3): %w", err)
	}
	fmt.Fprintln(w, "resize(3):", arr.Values(), "cap", arr.Cap())

	// Deep copy and move
	clone, err := arr.Clone()
	if err != nil {
		return fmt.Errorf("clone: %w", err)
	}
	if err = clone.Set(0, 50); err != nil {
		clone.Free()
		return fmt.Errorf("set(0): %w", err)
	}
	moved := clone.Move()
	fmt.Fprintln(w, "moved:", moved.Values(), "source len", clone.Len(), "original", arr.Values())
	moved.Free()

	// Allocation failures leave the container untouched
	if err = arr.Resize(1 << 20); !errors.Is(err, dynarray.ErrAllocationFailure) {
		return fmt.Errorf("resize(1<<20): expected allocation failure, got %v", err)
	}
	fmt.Fprintln(w, "resize(1<<20):", err, "len", arr.Len())

	// Single owner handle
	h1, err := dynarray.NewHandle(al, 42)
	if err != nil {
		return fmt.Errorf("construct handle: %w", err)
	}
	h2 := h1.Move()
	fmt.Fprintln(w, "h1 empty:", h1.IsEmpty(), "h2:", *h2.Get())
	h2.Free()
	return nil
}
