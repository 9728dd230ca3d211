package cli

import (
	"context"
	"os"
)

// Delete prompts for an ID and removes that pour. Deleting an unknown ID is
// not an error.
func (a *App) Delete(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Pour ID to delete", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "input failed", "error", err)
		return err
	}

	if err := a.store.Destroy(ctx, id); err != nil {
		printlnFn("Could not delete pour:", err.Error())
		return err
	}
	printlnFn("Deleted", id)
	return nil
}

// Clear removes every pour after an explicit confirmation.
func (a *App) Clear(ctx context.Context) error {
	if !Confirm(a.reader, "Delete ALL pours?", os.Stdout) {
		printlnFn("Cancelled")
		return nil
	}

	if err := a.store.DestroyAll(ctx); err != nil {
		printlnFn("Could not clear pours:", err.Error())
		return err
	}
	printlnFn("All pours deleted")
	return nil
}
