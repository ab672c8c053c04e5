package sotapb

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestPlayPoseRequest_KnownEncoding(t *testing.T) {
	req := &PlayPoseRequest{
		Pose:              &Pose{Servos: []*Servo{{Id: ServoID_HEAD_Y, Angle: 200}}},
		TimeMs:            1000,
		WaitForCompletion: Ptr(false),
	}
	want := []byte{
		0x0A, 0x07, // pose
		0x0A, 0x05, 0x08, 0x06, 0x10, 0xC8, 0x01, // servo HEAD_Y 200
		0x10, 0xE8, 0x07, // time_ms 1000
		0x18, 0x00, // wait_for_completion false, present
	}
	got := Marshal(req)
	if !bytes.Equal(got, want) {
		t.Fatalf("Marshal = % x, want % x", got, want)
	}
}

func TestPlayPoseRequest_RoundTripKeepsNegativeAnglesAndPresence(t *testing.T) {
	in := &PlayPoseRequest{
		Pose: &Pose{
			Servos: []*Servo{
				{Id: ServoID_SERVO_ID_UNSPECIFIED, Angle: 300},
				{Id: ServoID_HEAD_P, Angle: -900},
			},
			Led: &LedState{
				LeftEye:  &Color{Red: 255},
				RightEye: &Color{},
				Mouth:    128,
			},
		},
		TimeMs:            500,
		WaitForCompletion: Ptr(false),
	}

	var out PlayPoseRequest
	if err := Unmarshal(Marshal(in), &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(in, &out, cmpopts.IgnoreUnexported(PlayPoseRequest{})); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if out.Pose.Led.PowerButton != nil {
		t.Error("absent power button colour decoded as present")
	}
}

func TestConsumeWire_SkipsUnknownFields(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 99, protowire.BytesType)
	b = protowire.AppendString(b, "from a newer client")
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)
	b = protowire.AppendTag(b, 100, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, 7)

	var resp PlayPoseResponse
	if err := resp.ConsumeWire(b); err != nil {
		t.Fatalf("ConsumeWire: %v", err)
	}
	if !resp.Success {
		t.Error("Success = false, want true")
	}
}

func TestConsumeWire_RejectsWrongWireType(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, "yes")

	var resp PlayPoseResponse
	if err := resp.ConsumeWire(b); err == nil {
		t.Fatal("expected error for string in bool field")
	}
}

func TestConsumeWire_RejectsTruncatedInput(t *testing.T) {
	full := Marshal(&GetTTSDataResponse{AudioData: []byte("RIFF....WAVE")})
	var resp GetTTSDataResponse
	if err := resp.ConsumeWire(full[:len(full)-3]); err == nil {
		t.Fatal("expected error for truncated input")
	}
}

func TestEmptyMessage_IgnoresPayload(t *testing.T) {
	b := protowire.AppendTag(nil, 5, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)

	var req ServoOnRequest
	if err := req.ConsumeWire(b); err != nil {
		t.Fatalf("ConsumeWire: %v", err)
	}
	if got := Marshal(&req); len(got) != 0 {
		t.Errorf("Marshal = % x, want empty", got)
	}
}

func TestRecognitionResult_RepeatedFields(t *testing.T) {
	in := &RecognitionResult{
		Recognized:  true,
		BasicResult: "hello sota",
		SentenceList: []*Sentence{{
			Score: 87,
			WordList: []*Word{
				{Labels: []string{"hello", ""}, Types: []string{"greeting", "noun"}},
				{Labels: []string{"sota"}},
			},
		}},
	}
	var out RecognitionResult
	if err := Unmarshal(Marshal(in), &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(in, &out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCodec_DelegatesProtoMessages(t *testing.T) {
	c := Codec{}
	if c.Name() != "proto" {
		t.Errorf("Name = %q, want proto", c.Name())
	}

	b, err := c.Marshal(wrapperspb.String("ok"))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var sv wrapperspb.StringValue
	if err := c.Unmarshal(b, &sv); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if sv.GetValue() != "ok" {
		t.Errorf("value = %q, want ok", sv.GetValue())
	}

	if _, err := c.Marshal(struct{}{}); err == nil {
		t.Error("expected error for unsupported type")
	}
}

func TestServoID_String(t *testing.T) {
	if got := ServoID_HEAD_R.String(); got != "HEAD_R" {
		t.Errorf("String = %q, want HEAD_R", got)
	}
	if got := ServoID(42).String(); got != "ServoID(42)" {
		t.Errorf("String = %q, want ServoID(42)", got)
	}
}
