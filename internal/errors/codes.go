// Package errors provides structured error handling for the encounter engine.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Registry errors
	CodeRegistryDuplicateID Code = "REGISTRY_DUPLICATE_ID"
	CodeRegistryNotFound    Code = "REGISTRY_NOT_FOUND"
	CodeRegistryEmpty       Code = "REGISTRY_EMPTY"

	// Archetype errors
	CodeArchetypeEmptyID           Code = "ARCHETYPE_EMPTY_ID"
	CodeArchetypeInvalidHp         Code = "ARCHETYPE_INVALID_HP"
	CodeArchetypeInvalidAttack     Code = "ARCHETYPE_INVALID_ATTACK"
	CodeArchetypeInvalidDifficulty Code = "ARCHETYPE_INVALID_DIFFICULTY"
	CodeArchetypeInvalidSpawnRange Code = "ARCHETYPE_INVALID_SPAWN_RANGE"
	CodeArchetypeInvalidRole       Code = "ARCHETYPE_INVALID_ROLE"

	// Pack errors
	CodePackEmptyID       Code = "PACK_EMPTY_ID"
	CodePackNoMembers     Code = "PACK_NO_MEMBERS"
	CodePackUnknownMember Code = "PACK_UNKNOWN_MEMBER"

	// Party conversion errors
	CodePartyInvalidStrength Code = "PARTY_INVALID_COMBAT_STRENGTH"
	CodePartyUnknownType     Code = "PARTY_UNKNOWN_TYPE"

	// Content errors
	CodeContentDecode   Code = "CONTENT_DECODE"
	CodeContentRegister Code = "CONTENT_REGISTER"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)
