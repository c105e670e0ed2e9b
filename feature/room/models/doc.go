// Package models defines the per-room game state: the room, its seats and
// everything dealt to them.
//
// Ownership is explicit. Assigned traits and cards belong to exactly one
// Player; Shelter and RoomCatastrophe belong to exactly one Room. Deleting a
// room or restarting it removes the owned rows in the same transaction; no
// database cascade is relied on.
package models
