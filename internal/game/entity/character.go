package entity

import (
	gomath "math"

	"github.com/Faultbox/charlook/internal/engine/character"
	"github.com/Faultbox/charlook/internal/engine/sprite"
	"github.com/Faultbox/charlook/pkg/math"
)

// State is a movement state as sent in move packets. Odd values are the same
// state facing right.
type State uint8

// Movement states.
const (
	StateWalk   State = 2
	StateStand  State = 4
	StateFall   State = 6
	StateAlert  State = 8
	StateProne  State = 10
	StateSwim   State = 12
	StateLadder State = 14
	StateRope   State = 16
	StateDied   State = 18
	StateSit    State = 20
)

var statePoses = [...]character.Pose{
	character.PoseWalk1,
	character.PoseStand1,
	character.PoseJump,
	character.PoseAlert,
	character.PoseProne,
	character.PoseFly,
	character.PoseLadder,
	character.PoseRope,
	character.PoseDead,
	character.PoseSit,
}

// PoseForState returns the pose a movement state is drawn with.
func PoseForState(s State) character.Pose {
	i := int(s)/2 - 1
	if i < 0 || i >= len(statePoses) {
		return character.PoseNone
	}
	return statePoses[i]
}

// Look change targets.
const (
	StatSkin = iota
	StatFace
	StatHair
)

// Effect durations in milliseconds.
const (
	alertDuration      = 5000
	invincibleDuration = 2000
	ironBodyDuration   = 500
)

// Character is a player or remote character: an entity drawn with a Look.
type Character struct {
	Entity

	look  *character.Look
	state State
	flip  bool

	attacking bool
	// BaseAttackSpeed is the attack speed granted by stats and buffs.
	BaseAttackSpeed int8

	invincible timer
	ironBody   timer
}

// NewCharacter wraps look in a standing character.
func NewCharacter(e Entity, look *character.Look) *Character {
	c := &Character{Entity: e, look: look}
	c.SetDirection(true)
	c.SetState(StateStand)
	return c
}

// Look returns the character's look.
func (c *Character) Look() *character.Look {
	return c.look
}

// Update advances the character by one tick of its look and reports whether
// the look finished an animation cycle. A finished cycle ends the current
// attack and returns to the pose of the movement state.
func (c *Character) Update() bool {
	tick := c.look.Tick()
	c.invincible.update(int64(tick))
	c.ironBody.update(int64(tick))

	end := c.look.Update(LookTimestep(tick, c.StanceSpeed()))
	if end && c.attacking {
		c.attacking = false
		c.look.SetPose(PoseForState(c.state))
	}
	return end
}

// LookTimestep scales a tick by an animation speed. Speeds too small to
// advance a millisecond yield 0.
func LookTimestep(tick uint16, speed float64) uint16 {
	if speed*float64(tick) < 1 {
		return 0
	}
	return uint16(float64(tick) * speed)
}

// StanceSpeed returns the animation speed of the current state.
func (c *Character) StanceSpeed() float64 {
	if c.attacking {
		return c.RealAttackSpeed()
	}
	switch c.state {
	case StateWalk:
		return gomath.Abs(c.HSpeed)
	case StateLadder, StateRope:
		return gomath.Abs(c.VSpeed)
	default:
		return 1
	}
}

// AttackSpeed returns the integer attack speed: base speed plus the weapon's.
// Unarmed characters have speed 0.
func (c *Character) AttackSpeed() int8 {
	id := c.look.Equips().Weapon()
	if id <= 0 {
		return 0
	}
	return c.BaseAttackSpeed + int8(c.look.Context().Weapon(id).Speed)
}

// RealAttackSpeed converts the integer attack speed to an animation speed.
func (c *Character) RealAttackSpeed() float64 {
	return 1.7 - float64(c.AttackSpeed())/10
}

// AttackDelay returns the time until the no-th hit lands, scaled by the
// attack speed. firstFrame is the frame an afterimage starts on.
func (c *Character) AttackDelay(no int, firstFrame uint8) uint16 {
	delay := c.look.AttackDelay(no, firstFrame)
	return uint16(float64(delay) / c.RealAttackSpeed())
}

// Draw draws the character at pos. Invincibility pulses the tint and the
// iron body effect adds a fading, growing copy.
func (c *Character) Draw(r sprite.Renderer, pos math.Point, alpha float32) {
	if !c.Visible {
		return
	}

	color := sprite.White
	if c.invincible.active() {
		phi := c.invincible.alpha() * 30
		rgb := float32(0.9 - 0.5*gomath.Abs(gomath.Sin(phi)))
		color = sprite.Color{R: rgb, G: rgb, B: rgb, A: 1}
	}
	c.look.Draw(r, sprite.Tinted(pos, color), alpha)

	if c.ironBody.active() {
		a := float32(c.ironBody.alpha())
		c.look.Draw(r, sprite.Scaled(pos, 1+a, 1+a, 1-a), alpha)
	}
}

// SetStateByte applies a state as sent over the wire.
func (c *Character) SetStateByte(b uint8) {
	if b%2 == 1 {
		c.SetDirection(false)
		b--
	} else {
		c.SetDirection(true)
	}
	c.SetState(State(b))
}

// SetState switches movement state and the matching pose. Ignored while
// attacking.
func (c *Character) SetState(s State) {
	if c.attacking {
		return
	}
	c.state = s
	c.look.SetPose(PoseForState(s))
}

// State returns the movement state.
func (c *Character) State() State {
	return c.state
}

// SetDirection sets the facing: true faces left. Ignored while attacking.
func (c *Character) SetDirection(flip bool) {
	if c.attacking {
		return
	}
	c.flip = flip
	c.look.SetDirection(flip)
}

// Flip reports whether the character faces left.
func (c *Character) Flip() bool {
	return c.flip
}

// Attack swings the worn weapon. Swings that start no animation leave the
// character free to move.
func (c *Character) Attack(degenerate bool) {
	c.startAttack(c.look.Attack(degenerate))
}

// AttackPose attacks with an explicit pose.
func (c *Character) AttackPose(p character.Pose) {
	c.startAttack(c.look.AttackPose(p))
}

// AttackAction attacks with a named meta action (skills).
func (c *Character) AttackAction(name string) {
	c.startAttack(c.look.SetAction(name))
}

func (c *Character) startAttack(started bool) {
	if !started {
		return
	}
	c.attacking = true
	c.look.SetAlerted(alertDuration)
}

// IsAttacking reports whether an attack animation runs.
func (c *Character) IsAttacking() bool {
	return c.attacking
}

// CanAttack reports whether the character may start an attack.
func (c *Character) CanAttack() bool {
	return !c.attacking && !c.IsClimbing() && !c.IsSitting() && c.look.Equips().HasWeapon()
}

// ShowDamage alerts the character and makes it briefly invincible.
func (c *Character) ShowDamage() {
	c.look.SetAlerted(alertDuration)
	c.invincible.setFor(invincibleDuration)
}

// ShowIronBody starts the iron body effect.
func (c *Character) ShowIronBody() {
	c.ironBody.setFor(ironBodyDuration)
}

// IsInvincible reports whether the invincibility timer runs.
func (c *Character) IsInvincible() bool {
	return c.invincible.active()
}

// ChangeLook switches skin, face or hair.
func (c *Character) ChangeLook(stat int, id int32) {
	switch stat {
	case StatSkin:
		c.look.SetBody(id)
	case StatFace:
		c.look.SetFace(id)
	case StatHair:
		c.look.SetHair(id)
	}
}

// SetExpressionID shows the expression of an emote action id.
func (c *Character) SetExpressionID(id int32) {
	c.look.SetExpressionByAction(id)
}

// IsSitting reports whether the character sits.
func (c *Character) IsSitting() bool {
	return c.state == StateSit
}

// IsClimbing reports whether the character is on a ladder or rope.
func (c *Character) IsClimbing() bool {
	return c.state == StateLadder || c.state == StateRope
}

// IsTwoHanded reports whether the worn weapon is two-handed.
func (c *Character) IsTwoHanded() bool {
	return c.look.Equips().IsTwoHanded()
}

// WeaponType returns the family of the worn weapon.
func (c *Character) WeaponType() character.WeaponType {
	id := c.look.Equips().Weapon()
	if id <= 0 {
		return character.WeaponNone
	}
	return c.look.Context().Weapon(id).Type
}
