package app

import "fmt"

// Control is one discrete user action applied between frames.
type Control int

const (
	SlideBaseForward Control = iota
	SlideBaseBack
	LowerArmPitchUp
	LowerArmPitchDown
	LowerArmYawLeft
	LowerArmYawRight
	UpperArmPitchUp
	UpperArmPitchDown
	HeadPitchUp
	HeadPitchDown
	ToggleLampLight
	ResetLamp
	OpenLid
	CloseLid
	ToggleLight0
	ToggleLight1
	controlCount
)

var controlNames = [controlCount]string{
	"slide_base_forward", "slide_base_back",
	"lower_arm_pitch_up", "lower_arm_pitch_down",
	"lower_arm_yaw_left", "lower_arm_yaw_right",
	"upper_arm_pitch_up", "upper_arm_pitch_down",
	"head_pitch_up", "head_pitch_down",
	"toggle_lamp_light", "reset_lamp",
	"open_lid", "close_lid",
	"toggle_light0", "toggle_light1",
}

func (c Control) String() string {
	if c < 0 || c >= controlCount {
		return fmt.Sprintf("Control(%d)", int(c))
	}
	return controlNames[c]
}

// Apply performs c on the scene. It only mutates joint and light state; the
// next RenderFrame picks the change up.
func (a *App) Apply(c Control) error {
	if a.state != StateInitialized && a.state != StateRendering {
		return a.stateError("apply " + c.String())
	}
	slide := a.config.Controls.SlideStep
	step := a.config.Controls.AngleStep

	switch c {
	case SlideBaseForward:
		a.lamp.SlideBase(slide)
	case SlideBaseBack:
		a.lamp.SlideBase(-slide)
	case LowerArmPitchUp:
		a.lamp.RotateLowerArmX(step)
	case LowerArmPitchDown:
		a.lamp.RotateLowerArmX(-step)
	case LowerArmYawLeft:
		a.lamp.RotateLowerArmY(step)
	case LowerArmYawRight:
		a.lamp.RotateLowerArmY(-step)
	case UpperArmPitchUp:
		a.lamp.RotateUpperArmX(step)
	case UpperArmPitchDown:
		a.lamp.RotateUpperArmX(-step)
	case HeadPitchUp:
		a.lamp.RotateHeadX(step)
	case HeadPitchDown:
		a.lamp.RotateHeadX(-step)
	case ToggleLampLight:
		a.lamp.ToggleLight()
	case ResetLamp:
		a.lamp.SetJoints(a.config.Lamp.Joints)
	case OpenLid:
		a.laptop.RotateLid(step)
	case CloseLid:
		a.laptop.RotateLid(-step)
	case ToggleLight0:
		a.lights[0].Enabled = !a.lights[0].Enabled
	case ToggleLight1:
		a.lights[1].Enabled = !a.lights[1].Enabled
	default:
		return fmt.Errorf("unknown control %d", int(c))
	}
	a.logger.Debugf("control %s", c)
	return nil
}
