package statemachine

import (
	"fmt"
	"strings"

	"dinedash/models"
)

// ActorManager is the only role allowed to move orders along.
const ActorManager = string(models.RoleManager)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus `json:"from"`
	To    models.OrderStatus `json:"to"`
	Actor string             `json:"actor"`
}

// validTransitions is the order lifecycle. Completed and cancelled are terminal.
var validTransitions = []Transition{
	// Kitchen picks the order up
	{From: models.StatusPending, To: models.StatusPreparing, Actor: ActorManager},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorManager},
	// Served, handed over or delivered
	{From: models.StatusPreparing, To: models.StatusCompleted, Actor: ActorManager},
	{From: models.StatusPreparing, To: models.StatusCancelled, Actor: ActorManager},
}

var allStatuses = []models.OrderStatus{
	models.StatusPending,
	models.StatusPreparing,
	models.StatusCompleted,
	models.StatusCancelled,
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	nexts := []models.OrderStatus{}
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return fmt.Errorf("invalid transition: %s → %s is not allowed for actor '%s'. Valid transitions from %s are: %s",
		from, to, actor, from, describeValidFrom(from))
}

// IsTerminal reports whether no transition leaves status.
func IsTerminal(status models.OrderStatus) bool {
	return len(ValidTransitionsFrom(status)) == 0
}

// TerminalStates lists the statuses an order never leaves.
func TerminalStates() []models.OrderStatus {
	var out []models.OrderStatus
	for _, s := range allStatuses {
		if IsTerminal(s) {
			out = append(out, s)
		}
	}
	return out
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	out := make([]Transition, len(validTransitions))
	copy(out, validTransitions)
	return out
}
