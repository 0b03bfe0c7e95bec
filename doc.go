// Package lightly ports Go's own channel and select model onto a first-class
// API: channels are values behind a common Channel interface, so that
// heterogeneous channels can be collected into a slice and multiplexed by
// Select, which — unlike Go's builtin select statement — supports preference
// tiers, runtime-assembled case lists, and a distinguished "nothing
// available" result.
//
// Three channel kinds share the Channel contract: SyncChannel is a
// rendezvous with no buffering, BufferedChannel is a fixed-capacity FIFO,
// and TimeoutChannel is a one-shot channel that yields TIMEOUT after a fixed
// duration and then closes.
//
// Select, SelectTimeout, SelectNowait, and Selectf multiplex receives across
// a set of Channels. A Channel marked preferred (see Channel.Prefer) is
// chosen over any non-preferred channel whenever it is ready; within a tier,
// the choice among ready channels is uniformly random.
//
// Spawn and SpawnLogged start goroutines and track their cancellation
// handles in an Inventory, so that a group of tasks can be cancelled
// together with StopAll. SpawnDetached and WithTimeout start goroutines that
// are not tracked in any Inventory.
package lightly
