package sotapb

import "strconv"

// ServoID names a servo of the robot. Values match the device id bytes.
type ServoID int32

const (
	ServoID_SERVO_ID_UNSPECIFIED ServoID = 0
	ServoID_BODY_Y               ServoID = 1
	ServoID_L_SHOULDER           ServoID = 2
	ServoID_L_ELBOW              ServoID = 3
	ServoID_R_SHOULDER           ServoID = 4
	ServoID_R_ELBOW              ServoID = 5
	ServoID_HEAD_Y               ServoID = 6
	ServoID_HEAD_P               ServoID = 7
	ServoID_HEAD_R               ServoID = 8
)

var servoIDNames = map[ServoID]string{
	ServoID_SERVO_ID_UNSPECIFIED: "SERVO_ID_UNSPECIFIED",
	ServoID_BODY_Y:               "BODY_Y",
	ServoID_L_SHOULDER:           "L_SHOULDER",
	ServoID_L_ELBOW:              "L_ELBOW",
	ServoID_R_SHOULDER:           "R_SHOULDER",
	ServoID_R_ELBOW:              "R_ELBOW",
	ServoID_HEAD_Y:               "HEAD_Y",
	ServoID_HEAD_P:               "HEAD_P",
	ServoID_HEAD_R:               "HEAD_R",
}

func (x ServoID) String() string {
	if s, ok := servoIDNames[x]; ok {
		return s
	}
	return "ServoID(" + strconv.Itoa(int(x)) + ")"
}

// Color is an RGB triple with components in 0..255.
type Color struct {
	Red   int32
	Green int32
	Blue  int32
}

func (x *Color) AppendWire(b []byte) []byte {
	b = appendInt32(b, 1, x.Red)
	b = appendInt32(b, 2, x.Green)
	return appendInt32(b, 3, x.Blue)
}

func (x *Color) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			x.Red, err = f.int32()
		case 2:
			x.Green, err = f.int32()
		case 3:
			x.Blue, err = f.int32()
		}
		return err
	})
}

// LedState is the LED configuration applied together with a pose.
type LedState struct {
	LeftEye     *Color
	RightEye    *Color
	Mouth       int32
	PowerButton *Color
}

func (x *LedState) AppendWire(b []byte) []byte {
	if x.LeftEye != nil {
		b = appendMessage(b, 1, x.LeftEye)
	}
	if x.RightEye != nil {
		b = appendMessage(b, 2, x.RightEye)
	}
	b = appendInt32(b, 3, x.Mouth)
	if x.PowerButton != nil {
		b = appendMessage(b, 4, x.PowerButton)
	}
	return b
}

func (x *LedState) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			x.LeftEye = new(Color)
			err = f.message(x.LeftEye)
		case 2:
			x.RightEye = new(Color)
			err = f.message(x.RightEye)
		case 3:
			x.Mouth, err = f.int32()
		case 4:
			x.PowerButton = new(Color)
			err = f.message(x.PowerButton)
		}
		return err
	})
}

// Servo is one servo target or reading. Angles are tenths of a degree.
type Servo struct {
	Id    ServoID
	Angle int32
}

func (x *Servo) AppendWire(b []byte) []byte {
	b = appendInt32(b, 1, int32(x.Id))
	return appendInt32(b, 2, x.Angle)
}

func (x *Servo) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			var v int32
			v, err = f.int32()
			x.Id = ServoID(v)
		case 2:
			x.Angle, err = f.int32()
		}
		return err
	})
}

// Pose is a set of servo targets plus an optional LED state.
type Pose struct {
	Servos []*Servo
	Led    *LedState
}

func (x *Pose) GetLed() *LedState {
	if x == nil {
		return nil
	}
	return x.Led
}

func (x *Pose) AppendWire(b []byte) []byte {
	for _, s := range x.Servos {
		b = appendMessage(b, 1, s)
	}
	if x.Led != nil {
		b = appendMessage(b, 2, x.Led)
	}
	return b
}

func (x *Pose) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) error {
		switch f.num {
		case 1:
			s := new(Servo)
			if err := f.message(s); err != nil {
				return err
			}
			x.Servos = append(x.Servos, s)
		case 2:
			x.Led = new(LedState)
			return f.message(x.Led)
		}
		return nil
	})
}

type ServoOnRequest struct{ empty }
type ServoOnResponse struct{ empty }
type ServoOffRequest struct{ empty }
type ServoOffResponse struct{ empty }

type PlayPoseRequest struct {
	Pose   *Pose
	TimeMs int32
	// WaitForCompletion overrides the server default when set.
	WaitForCompletion *bool
}

func (x *PlayPoseRequest) AppendWire(b []byte) []byte {
	if x.Pose != nil {
		b = appendMessage(b, 1, x.Pose)
	}
	b = appendInt32(b, 2, x.TimeMs)
	return appendOptBool(b, 3, x.WaitForCompletion)
}

func (x *PlayPoseRequest) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			x.Pose = new(Pose)
			err = f.message(x.Pose)
		case 2:
			x.TimeMs, err = f.int32()
		case 3:
			x.WaitForCompletion, err = f.optBool()
		}
		return err
	})
}

type PlayPoseResponse struct {
	Success bool
}

func (x *PlayPoseResponse) AppendWire(b []byte) []byte {
	return appendBool(b, 1, x.Success)
}

func (x *PlayPoseResponse) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		if f.num == 1 {
			x.Success, err = f.bool()
		}
		return err
	})
}

type GetCurrentPoseRequest struct{ empty }

type IsEndInterAllRequest struct{ empty }

type IsEndInterAllResponse struct {
	IsEndInterAll bool
}

func (x *IsEndInterAllResponse) AppendWire(b []byte) []byte {
	return appendBool(b, 1, x.IsEndInterAll)
}

func (x *IsEndInterAllResponse) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		if f.num == 1 {
			x.IsEndInterAll, err = f.bool()
		}
		return err
	})
}

type GetPowerStatusRequest struct{ empty }

type GetPowerStatusResponse struct {
	BatteryVoltageMv int32
	IsCharging       bool
}

func (x *GetPowerStatusResponse) AppendWire(b []byte) []byte {
	b = appendInt32(b, 1, x.BatteryVoltageMv)
	return appendBool(b, 2, x.IsCharging)
}

func (x *GetPowerStatusResponse) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			x.BatteryVoltageMv, err = f.int32()
		case 2:
			x.IsCharging, err = f.bool()
		}
		return err
	})
}

type GetButtonStateRequest struct{ empty }

type GetButtonStateResponse struct {
	IsPowerPressed   bool
	IsVolUpPressed   bool
	IsVolDownPressed bool
}

func (x *GetButtonStateResponse) AppendWire(b []byte) []byte {
	b = appendBool(b, 1, x.IsPowerPressed)
	b = appendBool(b, 2, x.IsVolUpPressed)
	return appendBool(b, 3, x.IsVolDownPressed)
}

func (x *GetButtonStateResponse) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			x.IsPowerPressed, err = f.bool()
		case 2:
			x.IsVolUpPressed, err = f.bool()
		case 3:
			x.IsVolDownPressed, err = f.bool()
		}
		return err
	})
}

type SetCollisionDetectionRequest struct {
	Enabled bool
}

func (x *SetCollisionDetectionRequest) AppendWire(b []byte) []byte {
	return appendBool(b, 1, x.Enabled)
}

func (x *SetCollisionDetectionRequest) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		if f.num == 1 {
			x.Enabled, err = f.bool()
		}
		return err
	})
}

type SetCollisionDetectionResponse struct{ empty }
type EnableCollisionDetectionRequest struct{ empty }
type EnableCollisionDetectionResponse struct{ empty }
type DisableCollisionDetectionRequest struct{ empty }
type DisableCollisionDetectionResponse struct{ empty }

type SetMouthLedVoiceSyncRequest struct {
	Enabled bool
}

func (x *SetMouthLedVoiceSyncRequest) AppendWire(b []byte) []byte {
	return appendBool(b, 1, x.Enabled)
}

func (x *SetMouthLedVoiceSyncRequest) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		if f.num == 1 {
			x.Enabled, err = f.bool()
		}
		return err
	})
}

type SetMouthLedVoiceSyncResponse struct{ empty }

type PlayAudioRequest struct {
	AudioData         []byte
	WaitForCompletion *bool
	SaveFile          *bool
}

func (x *PlayAudioRequest) GetWaitForCompletion() bool {
	return x != nil && x.WaitForCompletion != nil && *x.WaitForCompletion
}

func (x *PlayAudioRequest) GetSaveFile() bool {
	return x != nil && x.SaveFile != nil && *x.SaveFile
}

func (x *PlayAudioRequest) AppendWire(b []byte) []byte {
	b = appendBytes(b, 1, x.AudioData)
	b = appendOptBool(b, 2, x.WaitForCompletion)
	return appendOptBool(b, 3, x.SaveFile)
}

func (x *PlayAudioRequest) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			x.AudioData, err = f.bytes()
		case 2:
			x.WaitForCompletion, err = f.optBool()
		case 3:
			x.SaveFile, err = f.optBool()
		}
		return err
	})
}

type PlayLocalAudioRequest struct {
	LocalFilepath     string
	WaitForCompletion *bool
}

func (x *PlayLocalAudioRequest) GetWaitForCompletion() bool {
	return x != nil && x.WaitForCompletion != nil && *x.WaitForCompletion
}

func (x *PlayLocalAudioRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, x.LocalFilepath)
	return appendOptBool(b, 2, x.WaitForCompletion)
}

func (x *PlayLocalAudioRequest) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			x.LocalFilepath, err = f.string()
		case 2:
			x.WaitForCompletion, err = f.optBool()
		}
		return err
	})
}

type PlayAudioResponse struct {
	Success bool
	// PlaybackId is set only for playback that was started without waiting.
	PlaybackId string
}

func (x *PlayAudioResponse) AppendWire(b []byte) []byte {
	b = appendBool(b, 1, x.Success)
	return appendString(b, 2, x.PlaybackId)
}

func (x *PlayAudioResponse) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			x.Success, err = f.bool()
		case 2:
			x.PlaybackId, err = f.string()
		}
		return err
	})
}

// StopAudioRequest stops one playback, or all of them when PlaybackId is nil.
type StopAudioRequest struct {
	PlaybackId *string
}

func (x *StopAudioRequest) AppendWire(b []byte) []byte {
	return appendOptString(b, 1, x.PlaybackId)
}

func (x *StopAudioRequest) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		if f.num == 1 {
			x.PlaybackId, err = f.optString()
		}
		return err
	})
}

type StopAudioResponse struct{ empty }

// IsAudioPlayingRequest queries one playback, or any when PlaybackId is nil.
type IsAudioPlayingRequest struct {
	PlaybackId *string
}

func (x *IsAudioPlayingRequest) AppendWire(b []byte) []byte {
	return appendOptString(b, 1, x.PlaybackId)
}

func (x *IsAudioPlayingRequest) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		if f.num == 1 {
			x.PlaybackId, err = f.optString()
		}
		return err
	})
}

type IsAudioPlayingResponse struct {
	IsPlaying bool
}

func (x *IsAudioPlayingResponse) AppendWire(b []byte) []byte {
	return appendBool(b, 1, x.IsPlaying)
}

func (x *IsAudioPlayingResponse) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		if f.num == 1 {
			x.IsPlaying, err = f.bool()
		}
		return err
	})
}

type StartRecordingRequest struct {
	DurationMs int32
}

func (x *StartRecordingRequest) AppendWire(b []byte) []byte {
	return appendInt32(b, 1, x.DurationMs)
}

func (x *StartRecordingRequest) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		if f.num == 1 {
			x.DurationMs, err = f.int32()
		}
		return err
	})
}

type StartRecordingResponse struct {
	Success bool
}

func (x *StartRecordingResponse) AppendWire(b []byte) []byte {
	return appendBool(b, 1, x.Success)
}

func (x *StartRecordingResponse) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		if f.num == 1 {
			x.Success, err = f.bool()
		}
		return err
	})
}

type StopRecordingRequest struct{ empty }

type StopRecordingResponse struct {
	AudioData []byte
}

func (x *StopRecordingResponse) AppendWire(b []byte) []byte {
	return appendBytes(b, 1, x.AudioData)
}

func (x *StopRecordingResponse) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		if f.num == 1 {
			x.AudioData, err = f.bytes()
		}
		return err
	})
}

type IsRecordingRequest struct{ empty }

type IsRecordingResponse struct {
	IsRecording bool
}

func (x *IsRecordingResponse) AppendWire(b []byte) []byte {
	return appendBool(b, 1, x.IsRecording)
}

func (x *IsRecordingResponse) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		if f.num == 1 {
			x.IsRecording, err = f.bool()
		}
		return err
	})
}
