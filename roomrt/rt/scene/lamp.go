package scene

import (
	"fmt"

	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/gekko3d/studyroom/roomrt/rt/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

type LampPart int

const (
	LampBase LampPart = iota
	LampLowerArm
	LampUpperArm
	LampHead
	LampLeftHorn
	LampRightHorn
	LampBulb
	lampPartCount
)

var lampPartNames = [lampPartCount]string{
	"lamp_base", "lamp_lower_arm", "lamp_upper_arm", "lamp_head",
	"lamp_horn_left", "lamp_horn_right", "lamp_bulb",
}

func (p LampPart) String() string {
	if p < 0 || p >= lampPartCount {
		return fmt.Sprintf("LampPart(%d)", int(p))
	}
	return lampPartNames[p]
}

// LampJoints are the user adjustable parameters. Angles are in degrees and
// unconstrained.
type LampJoints struct {
	BaseSlide  float32 `yaml:"base_slide"`
	LowerPitch float32 `yaml:"lower_pitch"`
	LowerYaw   float32 `yaml:"lower_yaw"`
	UpperPitch float32 `yaml:"upper_pitch"`
	HeadPitch  float32 `yaml:"head_pitch"`
}

type LampConfig struct {
	Base        mgl32.Vec3 `yaml:"base"`
	ArmWidth    float32    `yaml:"arm_width"`
	ArmLength   float32    `yaml:"arm_length"`
	Head        mgl32.Vec3 `yaml:"head"`
	Horn        mgl32.Vec3 `yaml:"horn"`
	BulbSize    float32    `yaml:"bulb_size"`
	TableTop    float32    `yaml:"-"`
	BaseZ       float32    `yaml:"-"`
	InnerCutoff float32    `yaml:"inner_cutoff"`
	OuterCutoff float32    `yaml:"outer_cutoff"`
	Texture     string     `yaml:"texture"`
	BulbTexture string     `yaml:"bulb_texture"`
	Joints      LampJoints `yaml:"joints"`
	LightOn     bool       `yaml:"light_on"`
}

func DefaultLampConfig() LampConfig {
	return LampConfig{
		Base:        mgl32.Vec3{0.5, 0.2, 0.5},
		ArmWidth:    0.1,
		ArmLength:   1.0,
		Head:        mgl32.Vec3{0.3, 0.2, 0.4},
		Horn:        mgl32.Vec3{0.1, 0.2, 0.1},
		BulbSize:    0.2,
		TableTop:    1.3,
		BaseZ:       -3.25,
		InnerCutoff: 15,
		OuterCutoff: 25,
		Texture:     "container",
		BulbTexture: "cloud",
		LightOn:     true,
	}
}

// PartMatrix is the world matrix of one lamp part for the given joints.
// The chain, outermost first, is
//
//	placement · rotY(yaw) · rotX(lower) · T(arm) · rotX(upper) · T(arm) · rotX(head)
//
// cut after the joint that carries the part, then the part's own offset and
// scale.
func (c LampConfig) PartMatrix(j LampJoints, part LampPart) mgl32.Mat4 {
	if part == LampBase {
		return core.Chain(
			core.Translate(0, c.TableTop+c.Base.Y()/2, c.BaseZ+j.BaseSlide),
			core.Scale(c.Base.X(), c.Base.Y(), c.Base.Z()),
		)
	}

	armScale := core.Scale(c.ArmWidth, c.ArmLength, c.ArmWidth)
	armCentre := core.Translate(0, c.ArmLength/2, 0)
	armEnd := core.Translate(0, c.ArmLength, 0)

	lower := core.Chain(
		core.Translate(0, c.TableTop+c.Base.Y(), c.BaseZ+j.BaseSlide),
		core.RotateY(j.LowerYaw),
		core.RotateX(j.LowerPitch),
	)
	if part == LampLowerArm {
		return core.Chain(lower, armCentre, armScale)
	}

	upper := core.Chain(lower, armEnd, core.RotateX(j.UpperPitch))
	if part == LampUpperArm {
		return core.Chain(upper, armCentre, armScale)
	}

	head := core.Chain(upper, armEnd, core.RotateX(j.HeadPitch))
	hw, hh, hd := c.Head.X(), c.Head.Y(), c.Head.Z()
	switch part {
	case LampHead:
		return core.Chain(head, core.Translate(0, hh/2, -hd/2), core.Scale(hw, hh, hd))
	case LampLeftHorn, LampRightHorn:
		x := hw / 2
		if part == LampLeftHorn {
			x = -x
		}
		return core.Chain(head, core.Translate(x, hh, -hd*0.2), core.Scale(c.Horn.X(), c.Horn.Y(), c.Horn.Z()))
	case LampBulb:
		return core.Chain(head, core.Translate(0, 0, -hd/2-c.BulbSize/2), core.Scale(c.BulbSize, c.BulbSize, c.BulbSize))
	default:
		panic(fmt.Sprintf("unknown lamp part %d", int(part)))
	}
}

// SpotDirection points the spotlight along the head. P is the sum of the
// three pitches.
func SpotDirection(j LampJoints) mgl32.Vec3 {
	pitch := j.LowerPitch + j.UpperPitch + j.HeadPitch
	cy := core.CosDegrees(j.LowerYaw)
	return mgl32.Vec3{
		-core.SinDegrees(j.LowerYaw),
		core.SinDegrees(pitch) * cy,
		-core.CosDegrees(pitch) * cy,
	}
}

// Lamp is the articulated desk lamp. It owns the spotlight state but not the
// Light value, which lives in the scene's light array.
type Lamp struct {
	config  LampConfig
	joints  LampJoints
	lightOn bool
	light   *core.Light
	parts   parts
	byPart  [lampPartCount]*gpu.RenderObject
}

func NewLamp(res *Resources, config LampConfig, light *core.Light) (*Lamp, error) {
	if light == nil {
		return nil, fmt.Errorf("lamp: no spotlight: %w", core.ErrInvalidConfiguration)
	}
	l := &Lamp{
		config:  config,
		joints:  config.Joints,
		lightOn: config.LightOn,
		light:   light,
	}
	mat := core.DefaultMaterial()
	for p := LampBase; p < lampPartCount; p++ {
		tex := config.Texture
		if p == LampBulb {
			tex = config.BulbTexture
		}
		obj, err := res.part(p.String(), MeshCube, mat, config.PartMatrix(l.joints, p), tex)
		if err != nil {
			l.parts.abandon()
			return nil, fmt.Errorf("lamp: %w", err)
		}
		l.parts.objects = append(l.parts.objects, obj)
		l.byPart[p] = obj
	}
	l.UpdateLight()
	return l, nil
}

func (l *Lamp) Name() string { return "lamp" }

// UpdateLight moves the spotlight to the bulb and aims it along the head.
func (l *Lamp) UpdateLight() {
	l.light.Kind = core.LightKindSpot
	l.light.Position = core.Translation(l.config.PartMatrix(l.joints, LampBulb))
	l.light.Direction = SpotDirection(l.joints)
	l.light.SetCutoffs(l.config.InnerCutoff, l.config.OuterCutoff)
	l.light.Enabled = l.lightOn
}

func (l *Lamp) Render(pass gpu.Pass) error {
	if l.parts.disposed {
		return fmt.Errorf("lamp: render: %w", core.ErrPostDispose)
	}
	for p := LampBase; p < lampPartCount; p++ {
		if p == LampBulb && !l.lightOn {
			continue
		}
		obj := l.byPart[p]
		if err := obj.SetModelMatrix(l.config.PartMatrix(l.joints, p)); err != nil {
			return fmt.Errorf("lamp: %w", err)
		}
		if err := obj.Render(pass); err != nil {
			return fmt.Errorf("lamp: %w", err)
		}
	}
	return nil
}

func (l *Lamp) Dispose() error {
	return l.parts.dispose("lamp")
}

func (l *Lamp) Joints() LampJoints     { return l.joints }
func (l *Lamp) SetJoints(j LampJoints) { l.joints = j }
func (l *Lamp) LightOn() bool          { return l.lightOn }
func (l *Lamp) Config() LampConfig     { return l.config }

func (l *Lamp) SlideBase(d float32)       { l.joints.BaseSlide += d }
func (l *Lamp) RotateLowerArmX(d float32) { l.joints.LowerPitch += d }
func (l *Lamp) RotateLowerArmY(d float32) { l.joints.LowerYaw += d }
func (l *Lamp) RotateUpperArmX(d float32) { l.joints.UpperPitch += d }
func (l *Lamp) RotateHeadX(d float32)     { l.joints.HeadPitch += d }
func (l *Lamp) ToggleLight()              { l.lightOn = !l.lightOn }
