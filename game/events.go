package game

import "log"

// Topic identifies a category of gameplay event on the bus.
type Topic string

const (
	TopicEnemyDeath    Topic = "enemy-death"
	TopicProjectileHit Topic = "projectile-hit"
	TopicLevelUp       Topic = "level-up"
	TopicRelicClaimed  Topic = "relic-claimed"
	TopicShowUpgradeUI Topic = "show-upgrade-ui"
	TopicPlayerLevelUp Topic = "player-level-up"
)

// UnlockTopic returns the per-weapon unlock notification topic.
func UnlockTopic(weapon string) Topic {
	return Topic("upgrade-" + weapon)
}

// EnemyDeathEvent is published when an enemy's health reaches zero.
type EnemyDeathEvent struct {
	X, Y float64
	Kind EnemyKind
}

// ProjectileHitEvent is published when a projectile connects with a target.
type ProjectileHitEvent struct {
	X, Y     float64
	Critical bool
}

// LevelUpEvent carries the world position where the level-up effect plays.
type LevelUpEvent struct {
	X, Y float64
}

// PlayerLevelUpEvent carries the level the player just reached.
type PlayerLevelUpEvent struct {
	Level int
}

// RelicClaimedEvent is published when a relic is claimed from the pickup overlay.
type RelicClaimedEvent struct {
	ID string
}

// ShowUpgradeUIEvent requests that the upgrade picker overlay be opened.
type ShowUpgradeUIEvent struct{}

// Handler receives a published event payload.
type Handler func(event any)

// Subscription identifies a registered handler so it can be removed later.
type Subscription struct {
	topic Topic
	id    int
}

// EventBus is a string-keyed publish/subscribe dispatcher for gameplay
// events. All publishing and subscribing happens on the game loop
// goroutine, so no locking is needed. The bus is created with its owning
// scene and closed on scene teardown so handlers never leak across
// playthroughs.
type EventBus struct {
	handlers map[Topic]map[int]Handler
	nextID   int
	closed   bool
}

// NewEventBus creates an empty event bus.
func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[Topic]map[int]Handler),
	}
}

// Subscribe registers a handler for a topic and returns its subscription.
func (b *EventBus) Subscribe(topic Topic, handler Handler) Subscription {
	if b.closed {
		log.Printf("[EventBus] subscribe on closed bus, topic %q ignored", topic)
		return Subscription{}
	}
	b.nextID++
	if b.handlers[topic] == nil {
		b.handlers[topic] = make(map[int]Handler)
	}
	b.handlers[topic][b.nextID] = handler
	return Subscription{topic: topic, id: b.nextID}
}

// Unsubscribe removes a previously registered handler.
func (b *EventBus) Unsubscribe(sub Subscription) {
	if handlers, ok := b.handlers[sub.topic]; ok {
		delete(handlers, sub.id)
	}
}

// Publish delivers an event to every handler registered for the topic.
// Delivery is synchronous; handlers run before Publish returns.
func (b *EventBus) Publish(topic Topic, event any) {
	if b.closed {
		return
	}
	for _, handler := range b.handlers[topic] {
		handler(event)
	}
}

// Close drops all handlers. Further publishes and subscribes are no-ops.
func (b *EventBus) Close() {
	b.handlers = make(map[Topic]map[int]Handler)
	b.closed = true
}

// HandlerCount returns the number of handlers registered for a topic.
func (b *EventBus) HandlerCount(topic Topic) int {
	return len(b.handlers[topic])
}
