package game

import (
	"fmt"
	"strings"
)

// Phase is where a game is in its lifecycle.
type Phase int

const (
	PhaseExploring Phase = iota
	PhaseCombat
	PhaseGameOver
	PhaseVictory
)

var phaseNames = map[Phase]string{
	PhaseExploring: "exploring",
	PhaseCombat:    "combat",
	PhaseGameOver:  "game_over",
	PhaseVictory:   "victory",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	for k, v := range phaseNames {
		if v == string(b) {
			*p = k
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", string(b))
}

// Terminal reports whether no further actions are possible.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseVictory
}

// WinCondition is met when the player stands in Room, the room is clear of
// enemies, and every item id in Items is held.
type WinCondition struct {
	Room  string   `json:"room"`
	Items []string `json:"items,omitempty"`
}

// Outcome is the result of one action.
type Outcome struct {
	Messages []string
	Turn     int
	Phase    Phase
}

func (o *Outcome) add(format string, args ...any) {
	o.Messages = append(o.Messages, fmt.Sprintf(format, args...))
}

// String joins the messages into display text.
func (o *Outcome) String() string {
	return strings.Join(o.Messages, "\n")
}

// GameState is one single-player game. It is not safe for concurrent use.
type GameState struct {
	world  *WorldMap
	player *Player

	turn  int
	phase Phase

	win    *WinCondition
	roller Roller
	sink   EventSink
}

type GameOpt func(*GameState)

func WithWinCondition(wc WinCondition) GameOpt {
	return func(g *GameState) {
		if wc.Room == "" {
			g.win = nil
			return
		}
		g.win = &wc
	}
}

func WithRoller(r Roller) GameOpt {
	return func(g *GameState) {
		g.roller = r
	}
}

func WithEventSink(s EventSink) GameOpt {
	return func(g *GameState) {
		if s == nil {
			s = nopSink{}
		}
		g.sink = s
	}
}

// New starts a game with player in its current room.
func New(world *WorldMap, player *Player, opts ...GameOpt) (*GameState, error) {
	g := &GameState{
		world:  world,
		player: player,
		roller: NewRoller(0),
		sink:   nopSink{},
	}
	for _, opt := range opts {
		opt(g)
	}

	if world.Room(player.CurrentRoom) == nil {
		return nil, fmt.Errorf("starting room: %w: %q", ErrUnknownRoom, player.CurrentRoom)
	}
	if g.win != nil && world.Room(g.win.Room) == nil {
		return nil, fmt.Errorf("win room: %w: %q", ErrUnknownRoom, g.win.Room)
	}

	g.phase = g.evaluatePhase()
	return g, nil
}

func (g *GameState) World() *WorldMap { return g.world }
func (g *GameState) Player() *Player  { return g.player }
func (g *GameState) Turn() int        { return g.turn }
func (g *GameState) Phase() Phase     { return g.phase }
func (g *GameState) IsOver() bool     { return g.phase.Terminal() }

// CurrentRoom returns the room the player is standing in.
func (g *GameState) CurrentRoom() *RoomInstance {
	return g.world.Room(g.player.CurrentRoom)
}

func (g *GameState) emit(kind EventKind, detail map[string]any) {
	g.sink.Emit(Event{
		Kind:   kind,
		Turn:   g.turn,
		Room:   g.player.CurrentRoom,
		Detail: detail,
	})
}

func (g *GameState) active() error {
	if g.phase.Terminal() {
		return ErrGameOver
	}
	return nil
}

// Look describes the current room. It does not take a turn.
func (g *GameState) Look() *Outcome {
	o := &Outcome{Turn: g.turn, Phase: g.phase}
	o.add("%s", g.CurrentRoom().Describe())
	return o
}

// Status summarizes the player. It does not take a turn.
func (g *GameState) Status() *Outcome {
	p := g.player
	o := &Outcome{Turn: g.turn, Phase: g.phase}
	o.add("%s, level %d", p.Name(), p.Level())
	o.add("Health: %d/%d", p.Health(), p.MaxHealth())
	o.add("Attack: %d  Defense: %d", p.AttackPower(), p.Defense())
	o.add("Experience: %d/%d", p.Experience(), p.ExperienceToLevel())
	if w := p.Weapon(); w != nil {
		o.add("Wielding: %s", w.Name)
	}
	if a := p.Armor(); a != nil {
		o.add("Wearing: %s", a.Name)
	}
	o.add("Turn: %d", g.turn)
	return o
}

// Move leaves the current room through dir.
func (g *GameState) Move(dir string) (*Outcome, error) {
	if err := g.active(); err != nil {
		return nil, err
	}
	if g.phase == PhaseCombat {
		return nil, ErrInCombat
	}

	from := g.player.CurrentRoom
	dest, err := g.world.Move(from, dir)
	if err != nil {
		return nil, err
	}

	g.player.CurrentRoom = dest
	g.emit(EventMoved, map[string]any{"from": from, "direction": strings.ToLower(dir)})

	o := &Outcome{}
	o.add("%s", g.CurrentRoom().Describe())
	g.endTurn(o, false)
	return o, nil
}

// Take picks up an item from the current room.
func (g *GameState) Take(name string) (*Outcome, error) {
	if err := g.active(); err != nil {
		return nil, err
	}

	room := g.CurrentRoom()
	item := room.FindItem(name)
	if item == nil {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}

	if err := g.player.Inventory().Add(item); err != nil {
		return nil, err
	}
	room.RemoveItem(item)
	g.emit(EventTook, map[string]any{"item": item.ID()})

	o := &Outcome{}
	o.add("You take the %s.", item.Name)
	g.endTurn(o, true)
	return o, nil
}

// Drop puts a held item down in the current room.
func (g *GameState) Drop(name string) (*Outcome, error) {
	if err := g.active(); err != nil {
		return nil, err
	}

	inv := g.player.Inventory()
	item := inv.Find(name)
	if item == nil {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}

	if err := inv.Remove(item); err != nil {
		return nil, err
	}

	o := &Outcome{}
	if !inv.Contains(item) && g.player.Unequip(item) {
		o.add("You stop using the %s.", item.Name)
	}
	g.CurrentRoom().AddItem(item)
	g.emit(EventDropped, map[string]any{"item": item.ID()})

	o.add("You drop the %s.", item.Name)
	g.endTurn(o, true)
	return o, nil
}

// useTarget picks what an item acts on. Unlock items act on the room, damage
// items on an enemy, everything else on the player unless an enemy is named.
func (g *GameState) useTarget(item *Item, target string) (any, error) {
	room := g.CurrentRoom()

	switch item.Effect {
	case EffectUnlock:
		return room, nil
	case EffectDamage:
		e := room.FindEnemy(target)
		if e == nil {
			return nil, ErrNoTarget
		}
		return e, nil
	}

	switch strings.ToLower(target) {
	case "", "me", "self", "myself":
		return g.player, nil
	}
	if e := room.FindEnemy(target); e != nil {
		return e, nil
	}
	return nil, fmt.Errorf("%q: %w", target, ErrNoTarget)
}

// Use applies a held item. target may name an enemy; it is ignored for
// items that don't need one.
func (g *GameState) Use(name string, target string) (*Outcome, error) {
	if err := g.active(); err != nil {
		return nil, err
	}

	item := g.player.Inventory().Find(name)
	if item == nil {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}

	tgt, err := g.useTarget(item, target)
	if err != nil {
		return nil, err
	}

	res, err := g.player.Inventory().Use(item, tgt)
	if err != nil {
		return nil, err
	}

	detail := map[string]any{"item": item.ID(), "effect": item.Effect.String(), "amount": res.Amount}
	o := &Outcome{}

	switch item.Effect {
	case EffectHeal:
		if e, ok := tgt.(*EnemyInstance); ok {
			o.add("You use the %s on the %s. It recovers %d health.", item.Name, e.Name(), res.Amount)
		} else {
			o.add("You use the %s and recover %d health.", item.Name, res.Amount)
		}
	case EffectDamage:
		e := tgt.(*EnemyInstance)
		detail["enemy"] = e.InstanceId
		o.add("You use the %s on the %s for %d damage.", item.Name, e.Name(), res.Amount)
	case EffectWeapon:
		o.add("You wield the %s.", item.Name)
	case EffectArmor:
		o.add("You put on the %s.", item.Name)
	case EffectUnlock:
		o.add("You use the %s. Something unlocks.", item.Name)
	}
	if res.Previous != nil {
		o.add("You set aside the %s.", res.Previous.Name)
	}
	g.emit(EventUsed, detail)

	if e, ok := tgt.(*EnemyInstance); ok && !e.IsAlive() {
		g.defeat(o, e)
	}

	g.endTurn(o, true)
	return o, nil
}

// Attack strikes an enemy in the current room. An empty name picks the first.
func (g *GameState) Attack(name string) (*Outcome, error) {
	if err := g.active(); err != nil {
		return nil, err
	}

	e := g.CurrentRoom().FindEnemy(name)
	if e == nil {
		if name == "" {
			return nil, ErrNoTarget
		}
		return nil, fmt.Errorf("%q: %w", name, ErrNoTarget)
	}

	dealt := e.TakeDamage(g.player.AttackPower())
	g.emit(EventAttacked, map[string]any{"enemy": e.InstanceId, "damage": dealt, "health": e.Health()})

	o := &Outcome{}
	o.add("You attack the %s for %d damage.", e.Name(), dealt)
	if !e.IsAlive() {
		g.defeat(o, e)
	}

	g.endTurn(o, true)
	return o, nil
}

// Talk says message to an NPC in the current room.
func (g *GameState) Talk(name string, message string) (*Outcome, error) {
	if err := g.active(); err != nil {
		return nil, err
	}

	n := g.CurrentRoom().FindNPC(name)
	if n == nil {
		if name == "" {
			return nil, ErrNoTarget
		}
		return nil, fmt.Errorf("%q: %w", name, ErrNoTarget)
	}

	reply := n.Respond(message)
	g.emit(EventTalked, map[string]any{"npc": n.ID(), "message": message})

	o := &Outcome{}
	o.add("%s says, \"%s\"", n.Name, reply)
	g.endTurn(o, true)
	return o, nil
}

// defeat removes a dead enemy, drops its loot, and awards experience.
func (g *GameState) defeat(o *Outcome, e *EnemyInstance) {
	room := g.CurrentRoom()
	room.RemoveEnemy(e)
	o.add("You defeated the %s!", e.Name())

	for _, l := range e.Enemy.Loot {
		item := l.Id()
		if item == nil {
			continue
		}
		room.AddItem(item)
		o.add("The %s drops %s.", e.Name(), item.Name)
	}

	xp := e.Experience()
	g.emit(EventDefeated, map[string]any{"enemy": e.InstanceId, "experience": xp})
	o.add("You gain %d experience.", xp)

	for _, up := range g.player.GainExperience(xp) {
		g.emit(EventLevelUp, map[string]any{"level": up.Level})
		o.add("You reached level %d!", up.Level)
	}
}

// endTurn lets enemies in the room retaliate, ticks cooldowns, and moves the
// phase machine.
func (g *GameState) endTurn(o *Outcome, retaliate bool) {
	g.turn++

	if retaliate {
		for _, e := range g.CurrentRoom().Enemies() {
			if !g.player.IsAlive() {
				break
			}
			for _, s := range e.Attack(g.player, g.roller) {
				if s.Ability == "attack" {
					o.add("The %s attacks you for %d damage.", s.Attacker, s.Dealt)
				} else {
					o.add("The %s uses %s on you for %d damage.", s.Attacker, s.Ability, s.Dealt)
				}
				g.emit(EventStruck, map[string]any{
					"enemy":   e.InstanceId,
					"ability": s.Ability,
					"damage":  s.Dealt,
					"health":  g.player.Health(),
				})
			}
		}
	}

	for _, id := range g.world.RoomIds() {
		for _, e := range g.world.Room(id).Enemies() {
			e.Tick()
		}
	}

	g.updatePhase(o)
	o.Turn = g.turn
	o.Phase = g.phase
}

func (g *GameState) won() bool {
	if g.win == nil || g.player.CurrentRoom != g.win.Room {
		return false
	}
	if g.CurrentRoom().HasEnemies() {
		return false
	}
	for _, id := range g.win.Items {
		if !g.holds(id) {
			return false
		}
	}
	return true
}

func (g *GameState) holds(itemId string) bool {
	for _, i := range g.player.Inventory().Items() {
		if i.ID() == itemId {
			return true
		}
	}
	return false
}

func (g *GameState) evaluatePhase() Phase {
	switch {
	case !g.player.IsAlive():
		return PhaseGameOver
	case g.won():
		return PhaseVictory
	case g.CurrentRoom().HasEnemies():
		return PhaseCombat
	default:
		return PhaseExploring
	}
}

func (g *GameState) updatePhase(o *Outcome) {
	prev := g.phase
	g.phase = g.evaluatePhase()
	if prev == g.phase {
		return
	}

	switch g.phase {
	case PhaseGameOver:
		o.add("You have died.")
	case PhaseVictory:
		o.add("You have won!")
	case PhaseCombat:
		o.add("You are in combat!")
	case PhaseExploring:
		o.add("The room falls quiet.")
	}
	g.emit(EventPhase, map[string]any{"from": prev.String(), "to": g.phase.String()})
}
