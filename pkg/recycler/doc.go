// Package recycler binds a list of delegates to a host's recycling list view.
//
// An [Adapter] owns the committed list snapshot. Every [Adapter.Submit] diffs
// the new list against the snapshot, keeps previous instances for rows whose
// content did not change, commits the result and replays the edit script to
// the [Host] as insert, remove, move and change notifications.
//
// The host drives the rest through slot callbacks:
//
//	slot := adapter.CreateSlot(adapter.ViewType(pos))
//	adapter.BindSlot(slot, pos, nil)
//	adapter.AttachSlot(slot)
//	...
//	adapter.DetachSlot(slot)
//	adapter.RecycleSlot(slot)
//
// # Threading
//
// All methods must be called from the host's UI goroutine. Submit is
// synchronous and is not reentrant: a Submit issued from inside a host
// notification is reported and dropped.
package recycler
