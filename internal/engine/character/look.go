package character

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/charlook/internal/engine/anim"
	"github.com/Faultbox/charlook/internal/engine/sprite"
	"github.com/Faultbox/charlook/pkg/math"
)

// Timestep is the default logic tick in milliseconds.
const Timestep = 8

// SoundPlayer plays a sound by path. Play must not block.
type SoundPlayer interface {
	Play(path string)
}

// Entry describes a look: skin, hair, face and worn items.
type Entry struct {
	Skin   int32
	Hair   int32
	Face   int32
	Equips []int32
}

// LookOption configures a Look.
type LookOption func(*Look)

// WithRand sets the source used to pick attack poses.
func WithRand(rng *rand.Rand) LookOption {
	return func(l *Look) {
		if rng != nil {
			l.rng = rng
		}
	}
}

// WithTick sets the logic tick in milliseconds. The alert timer counts
// down by one tick per update. Zero keeps Timestep.
func WithTick(ms uint16) LookOption {
	return func(l *Look) {
		if ms > 0 {
			l.tick = ms
		}
	}
}

// WithSounds sets the player for weapon sounds.
func WithSounds(p SoundPlayer) LookOption {
	return func(l *Look) {
		l.sounds = p
	}
}

// Look is the appearance of one character: the providers it is drawn from,
// its pose and expression timelines and the active meta action.
type Look struct {
	ctx    *Context
	rng    *rand.Rand
	sounds SoundPlayer
	tick   uint16

	body   *Body
	hair   *Hair
	face   *Face
	equips Equips

	pose        anim.Nominal[Pose]
	frame       anim.Nominal[uint8]
	poseElapsed uint16

	expression anim.Nominal[Expression]
	expFrame   anim.Nominal[uint8]
	expElapsed uint16

	action     *MetaAction
	actionName string
	actionStep uint8

	flip    bool
	alerted int64
}

// NewLook builds a look from entry. Providers come from ctx.
func NewLook(ctx *Context, entry Entry, opts ...LookOption) *Look {
	l := &Look{
		ctx:  ctx,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		tick: Timestep,
	}
	for _, opt := range opts {
		opt(l)
	}

	l.Reset()
	l.SetBody(entry.Skin)
	l.SetHair(entry.Hair)
	l.SetFace(entry.Face)
	for _, id := range entry.Equips {
		l.AddEquip(id)
	}
	return l
}

// Reset faces left, clears any action and returns to the idle pose and the
// default expression.
func (l *Look) Reset() {
	l.flip = true

	l.action = nil
	l.actionName = ""
	l.actionStep = 0

	l.SetPose(PoseStand1)
	l.frame.Set(0)
	l.poseElapsed = 0

	l.SetExpression(ExprDefault)
	l.expFrame.Set(0)
	l.expElapsed = 0
}

// SetBody switches to the body of a skin id.
func (l *Look) SetBody(skin int32) {
	l.body = l.ctx.Body(skin)
}

// SetHair switches hair style.
func (l *Look) SetHair(id int32) {
	l.hair = l.ctx.Hair(id)
}

// SetFace switches face.
func (l *Look) SetFace(id int32) {
	l.face = l.ctx.Face(id)
}

// AddEquip wears an item and re-resolves the stand/walk bucket.
func (l *Look) AddEquip(id int32) {
	l.equips.Add(l.ctx.Clothing(id))
	l.updateTwoHanded()
}

// RemoveEquip takes off the item in slot. Only the weapon changes the
// stand/walk bucket.
func (l *Look) RemoveEquip(slot EquipSlot) {
	l.equips.Remove(slot)
	if slot == SlotWeapon {
		l.updateTwoHanded()
	}
}

func (l *Look) updateTwoHanded() {
	l.SetPose(l.pose.Get().Base())
}

// Update advances the look by timestep milliseconds and reports whether the
// pose animation or the active action just completed. A zero timestep only
// drops pending blends.
func (l *Look) Update(timestep uint16) bool {
	if timestep == 0 {
		l.pose.Normalize()
		l.frame.Normalize()
		l.expression.Normalize()
		l.expFrame.Normalize()
		return false
	}

	if l.alerted > 0 {
		l.alerted -= int64(l.tick)
	}

	end := l.updatePose(timestep)
	l.updateExpression(timestep)
	return end
}

// remaining returns the time left before a frame of length delay ends.
func remaining(delay, elapsed uint16) uint16 {
	if elapsed >= delay {
		return 0
	}
	return delay - elapsed
}

func (l *Look) updatePose(timestep uint16) bool {
	var delay uint16
	if l.action != nil {
		delay = l.action.Delay
	} else {
		delay = l.ctx.table.Delay(l.pose.Get(), l.frame.Get())
	}

	delta := remaining(delay, l.poseElapsed)
	if timestep < delta {
		l.pose.Normalize()
		l.frame.Normalize()
		l.poseElapsed += timestep
		return false
	}

	l.poseElapsed = timestep - delta
	threshold := float32(delta) / float32(timestep)

	if l.action == nil {
		next := l.ctx.table.NextFrame(l.pose.Get(), l.frame.Get())
		l.frame.Next(next, threshold)
		return next == 0
	}

	l.actionStep = l.ctx.table.NextActionStep(l.actionName, l.actionStep)
	if l.actionStep > 0 {
		l.action, _ = l.ctx.table.Action(l.actionName, l.actionStep)
		l.pose.Next(l.action.Pose, threshold)
		l.frame.Next(l.action.Frame, threshold)
		return false
	}

	l.action = nil
	l.actionName = ""
	l.SetPose(PoseStand1)
	return true
}

func (l *Look) updateExpression(timestep uint16) {
	delay := l.face.Delay(l.expression.Get(), l.expFrame.Get())
	delta := remaining(delay, l.expElapsed)
	if timestep < delta {
		l.expression.Normalize()
		l.expFrame.Normalize()
		l.expElapsed += timestep
		return
	}

	l.expElapsed = timestep - delta
	threshold := float32(delta) / float32(timestep)

	next := l.face.NextFrame(l.expression.Get(), l.expFrame.Get())
	l.expFrame.Next(next, threshold)
	if next != 0 {
		return
	}
	if l.expression.Get() == ExprDefault {
		l.expression.Next(ExprBlink, threshold)
	} else {
		l.expression.Next(ExprDefault, threshold)
	}
}

// SetPose switches to the equipment-adjusted form of p. It does nothing while
// an action runs or when p is PoseNone, and keeps the timeline if the pose
// does not change.
func (l *Look) SetPose(p Pose) {
	if l.action != nil || p == PoseNone {
		return
	}

	adjusted := l.equips.AdjustPose(p)
	if l.pose.Get() != adjusted {
		l.pose.Set(adjusted)
		l.frame.Set(0)
		l.poseElapsed = 0
	}
}

// SetExpression switches expression, restarting its timeline if it changes.
func (l *Look) SetExpression(e Expression) {
	if l.expression.Get() != e {
		l.expression.Set(e)
		l.expFrame.Set(0)
		l.expElapsed = 0
	}
}

// SetExpressionByAction switches to the expression of an emote action id.
// Unknown ids are logged and fall back to the default expression.
func (l *Look) SetExpressionByAction(id int32) {
	e, ok := ExpressionByAction(id)
	if !ok {
		l.ctx.log.Warn("unhandled expression id", zap.Int32("id", id))
	}
	l.SetExpression(e)
}

// SetAction starts the named meta action, or switches pose if name is a pose
// name, and reports whether either happened. Empty names, unknown names and
// the running action are ignored.
func (l *Look) SetAction(name string) bool {
	if name == "" || name == l.actionName {
		return false
	}

	if p := PoseByName(name); p != PoseNone {
		l.SetPose(p)
		return true
	}

	action, ok := l.ctx.table.Action(name, 0)
	if !ok {
		return false
	}
	l.action = action
	l.actionName = name
	l.actionStep = 0
	l.poseElapsed = 0
	l.pose.Set(action.Pose)
	l.frame.Set(action.Frame)
	return true
}

// Attack plays a swing of the worn weapon and reports whether an attack
// animation started. Guns start the handgun action unless the attack is
// degenerate. The weapon sound plays even when no attack pose applies.
func (l *Look) Attack(degenerate bool) bool {
	id := l.equips.Weapon()
	if id <= 0 {
		return false
	}
	weapon := l.ctx.Weapon(id)

	started := true
	if weapon.Attack == AttackGun && !degenerate {
		l.pose.Set(PoseShot)
		l.SetAction(HandgunAction)
	} else if p := attackPose(l.rng, l.pose.Get(), weapon.Attack, degenerate); p != PoseNone {
		l.pose.Set(p)
		l.frame.Set(0)
		l.poseElapsed = 0
	} else {
		started = false
	}

	if l.sounds != nil {
		if path := weapon.UseSound(degenerate); path != "" {
			l.sounds.Play(path)
		}
	}
	return started
}

// AttackPose attacks with an explicit pose and reports whether it started.
// PoseShot starts the handgun action.
func (l *Look) AttackPose(p Pose) bool {
	if l.action != nil || p == PoseNone {
		return false
	}
	if p == PoseShot {
		return l.SetAction(HandgunAction)
	}
	l.SetPose(p)
	return true
}

// Tick returns the logic tick in milliseconds.
func (l *Look) Tick() uint16 {
	return l.tick
}

// SetDirection sets the facing: true faces left.
func (l *Look) SetDirection(flip bool) {
	l.flip = flip
}

// SetAlerted keeps stand poses drawn as alert for ms milliseconds of ticks.
func (l *Look) SetAlerted(ms int64) {
	l.alerted = ms
}

// Alerted reports whether the alert timer runs.
func (l *Look) Alerted() bool {
	return l.alerted > 0
}

// IsTwoHanded reports whether p is drawn with the two-handed arm order.
func (l *Look) IsTwoHanded(p Pose) bool {
	switch p {
	case PoseStand1, PoseWalk1:
		return false
	case PoseStand2, PoseWalk2:
		return true
	default:
		return l.equips.IsTwoHanded()
	}
}

// AttackDelay returns the time until the no-th hit. During an action it comes
// from the action's attack frames, otherwise it is the time to reach
// firstFrame of the current pose.
func (l *Look) AttackDelay(no int, firstFrame uint8) uint16 {
	if l.action != nil {
		return l.ctx.table.AttackDelay(l.actionName, no)
	}
	var delay uint16
	for f := uint8(0); f < firstFrame; f++ {
		delay += l.ctx.table.Delay(l.pose.Get(), f)
	}
	return delay
}

// Draw draws the look blended at alpha between the last two ticks.
func (l *Look) Draw(r sprite.Renderer, t sprite.Transform, alpha float32) {
	if l.body == nil || l.hair == nil || l.face == nil {
		return
	}

	var move math.Point
	if l.action != nil {
		move = l.action.Move
	}
	rel := sprite.Flipped(move, l.flip).Compose(t)

	pose := l.pose.Blend(alpha)
	if (pose == PoseStand1 || pose == PoseStand2) && l.Alerted() {
		pose = PoseAlert
	}
	l.draw(r, rel, pose, l.expression.Blend(alpha), l.frame.Blend(alpha), l.expFrame.Blend(alpha))
}

// DrawPreview draws the first frame of a pose and expression, independent of
// the timelines.
func (l *Look) DrawPreview(r sprite.Renderer, pos math.Point, flip bool, p Pose, e Expression) {
	if l.body == nil || l.hair == nil || l.face == nil {
		return
	}
	l.draw(r, sprite.Flipped(pos, flip), l.equips.AdjustPose(p), e, 0, 0)
}

func (l *Look) draw(r sprite.Renderer, t sprite.Transform, p Pose, e Expression, frame, expFrame uint8) {
	faceT := t.Compose(sprite.Shifted(l.ctx.table.FacePos(p, frame)))

	steps := Plan(PlanKey{
		Climbing:  p.IsClimbing(),
		Cap:       l.equips.CapType(),
		TwoHanded: l.IsTwoHanded(p),
		Overall:   l.equips.HasOverall(),
	})
	for _, s := range steps {
		st := t
		if s.FaceRelative {
			st = faceT
		}
		f := frame
		if s.FrameZero {
			f = 0
		}

		switch s.Source {
		case SourceBody:
			l.body.Draw(p, s.BodyLayer, f, r, st)
		case SourceHair:
			l.hair.Draw(p, s.HairLayer, f, r, st)
		case SourceFace:
			l.face.Draw(e, expFrame, r, st)
		case SourceEquip:
			l.equips.Draw(s.Slot, p, s.Layer, f, r, st)
		}
	}
}

// Pose returns the committed pose.
func (l *Look) Pose() Pose { return l.pose.Get() }

// Frame returns the committed pose frame.
func (l *Look) Frame() uint8 { return l.frame.Get() }

// Expression returns the committed expression.
func (l *Look) Expression() Expression { return l.expression.Get() }

// ExpressionFrame returns the committed expression frame.
func (l *Look) ExpressionFrame() uint8 { return l.expFrame.Get() }

// Action returns the name of the running meta action, "" if none.
func (l *Look) Action() string { return l.actionName }

// Flip reports whether the look faces left.
func (l *Look) Flip() bool { return l.flip }

// Body returns the body provider.
func (l *Look) Body() *Body { return l.body }

// Hair returns the hair provider.
func (l *Look) Hair() *Hair { return l.hair }

// Face returns the face provider.
func (l *Look) Face() *Face { return l.face }

// Equips returns the worn items.
func (l *Look) Equips() *Equips { return &l.equips }

// Context returns the shared asset context.
func (l *Look) Context() *Context { return l.ctx }
