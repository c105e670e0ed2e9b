// Package room manages game rooms and the devices seated in them.
//
// A room is created with every seat pre-drawn and unclaimed. Devices claim
// the lowest free seat on join and keep it across restarts; a restart
// redraws all content and puts the room back to forming. Rooms are deleted
// when the host leaves, when the last bound device leaves, or when they sit
// idle past the stale window, which is checked whenever someone leaves.
//
// Device ids are unique across claimed seats through a unique index on
// players.device_id; unclaimed seats hold NULL.
package room
