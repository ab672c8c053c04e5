package rpc_test

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.opentelemetry.io/otel/metric/noop"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/MrWong99/sotabridge/internal/device"
	"github.com/MrWong99/sotabridge/internal/device/sim"
	"github.com/MrWong99/sotabridge/internal/kernel"
	"github.com/MrWong99/sotabridge/internal/observe"
	"github.com/MrWong99/sotabridge/internal/playback"
	"github.com/MrWong99/sotabridge/internal/rpc"
	"github.com/MrWong99/sotabridge/pkg/audio"
	"github.com/MrWong99/sotabridge/pkg/sotapb"
)

// ── harness ──────────────────────────────────────────────────────────────────

type harness struct {
	robot   *sim.Robot
	worker  *kernel.Worker
	players *playback.Registry
	svc     *rpc.Services

	playFile string
	recFile  string

	motion      *sotapb.MotionServiceClient
	expressive  *sotapb.MotionAsSotaWishServiceClient
	tts         *sotapb.TextToSpeechServiceClient
	playback    *sotapb.PlaybackServiceClient
	recording   *sotapb.RecordingServiceClient
	recognition *sotapb.SpeechRecognitionServiceClient
}

func newHarness(t *testing.T, opts sim.Options) *harness {
	t.Helper()
	m, err := observe.NewMetrics(noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	h := &harness{robot: sim.New(opts)}
	h.worker = kernel.NewWorker(h.robot.Driver(), kernel.WithMetrics(m), kernel.WithLogger(slog.New(slog.DiscardHandler)))
	if err := h.worker.Start(context.Background()); err != nil {
		t.Fatalf("worker Start: %v", err)
	}
	rec, err := h.robot.Driver().NewRecorder()
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	dir := t.TempDir()
	h.playFile = filepath.Join(dir, "play.wav")
	h.recFile = filepath.Join(dir, "rec.wav")
	h.players = playback.New(playback.WithMetrics(m))
	h.svc = rpc.New(rpc.Config{
		Queue:           h.worker,
		Recorder:        rec,
		Players:         h.players,
		PlaybackFile:    h.playFile,
		RecordingFile:   h.recFile,
		AwaitCompletion: true,
		Metrics:         m,
	})

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(
		grpc.ForceServerCodec(sotapb.Codec{}),
		grpc.UnaryInterceptor(observe.UnaryServerInterceptor(m)),
	)
	h.svc.Register(srv)
	go func() { _ = srv.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
		srv.Stop()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.worker.Stop(ctx)
	})

	h.motion = sotapb.NewMotionServiceClient(conn)
	h.expressive = sotapb.NewMotionAsSotaWishServiceClient(conn)
	h.tts = sotapb.NewTextToSpeechServiceClient(conn)
	h.playback = sotapb.NewPlaybackServiceClient(conn)
	h.recording = sotapb.NewRecordingServiceClient(conn)
	h.recognition = sotapb.NewSpeechRecognitionServiceClient(conn)
	return h
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func wantCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	if got := status.Code(err); got != want {
		t.Fatalf("code = %v (%v), want %v", got, err, want)
	}
}

func ptr[T any](v T) *T { return &v }

func wav(d time.Duration) []byte {
	return audio.Encode(audio.Tone(440, d, sim.Format.SampleRate), sim.Format)
}

func servoAngle(p *sotapb.Pose, id sotapb.ServoID) (int32, bool) {
	for _, s := range p.Servos {
		if s.Id == id {
			return s.Angle, true
		}
	}
	return 0, false
}

// ── motion ───────────────────────────────────────────────────────────────────

func TestServoOnThenPlayPose(t *testing.T) {
	h := newHarness(t, sim.Options{})
	ctx := testCtx(t)

	if _, err := h.motion.ServoOn(ctx, &sotapb.ServoOnRequest{}); err != nil {
		t.Fatalf("ServoOn: %v", err)
	}
	if !h.robot.ServoPowered() {
		t.Error("servos not powered after ServoOn")
	}

	start := time.Now()
	resp, err := h.motion.PlayPose(ctx, &sotapb.PlayPoseRequest{
		Pose: &sotapb.Pose{Servos: []*sotapb.Servo{
			{Id: sotapb.ServoID_BODY_Y, Angle: 0},
			{Id: sotapb.ServoID_HEAD_Y, Angle: 200},
		}},
		TimeMs: 300,
	})
	if err != nil {
		t.Fatalf("PlayPose: %v", err)
	}
	if !resp.Success {
		t.Fatal("PlayPose success = false")
	}
	if elapsed := time.Since(start); elapsed < 300*time.Millisecond {
		t.Errorf("PlayPose returned after %v, want it to wait for the motion", elapsed)
	}

	pose, err := h.motion.GetCurrentPose(ctx, &sotapb.GetCurrentPoseRequest{})
	if err != nil {
		t.Fatalf("GetCurrentPose: %v", err)
	}
	if got, ok := servoAngle(pose, sotapb.ServoID_HEAD_Y); !ok || got != 200 {
		t.Errorf("HEAD_Y = (%d, %v), want 200", got, ok)
	}
	if len(pose.Servos) != len(sim.DefaultIDs) {
		t.Errorf("pose has %d servos, want %d", len(pose.Servos), len(sim.DefaultIDs))
	}
}

func TestPlayPose_FiltersUnspecifiedServo(t *testing.T) {
	h := newHarness(t, sim.Options{})
	resp, err := h.motion.PlayPose(testCtx(t), &sotapb.PlayPoseRequest{
		Pose: &sotapb.Pose{Servos: []*sotapb.Servo{
			{Id: sotapb.ServoID_SERVO_ID_UNSPECIFIED, Angle: 300},
			{Id: sotapb.ServoID_HEAD_P, Angle: 100},
		}},
		TimeMs: 50,
	})
	if err != nil {
		t.Fatalf("PlayPose: %v", err)
	}
	if !resp.Success {
		t.Error("success = false")
	}
	want := &device.Pose{IDs: []byte{7}, Angles: []int16{100}}
	if diff := cmp.Diff(want, h.robot.LastPose()); diff != "" {
		t.Errorf("device pose mismatch (-want +got):\n%s", diff)
	}
}

func TestPlayPose_WaitOverride(t *testing.T) {
	h := newHarness(t, sim.Options{})
	ctx := testCtx(t)

	start := time.Now()
	_, err := h.motion.PlayPose(ctx, &sotapb.PlayPoseRequest{
		Pose:              &sotapb.Pose{Servos: []*sotapb.Servo{{Id: sotapb.ServoID_L_ELBOW, Angle: 450}}},
		TimeMs:            2000,
		WaitForCompletion: ptr(false),
	})
	if err != nil {
		t.Fatalf("PlayPose: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("PlayPose without waiting took %v", elapsed)
	}
	end, err := h.motion.IsEndInterAll(ctx, &sotapb.IsEndInterAllRequest{})
	if err != nil {
		t.Fatalf("IsEndInterAll: %v", err)
	}
	if end.IsEndInterAll {
		t.Error("IsEndInterAll = true while the motion is still running")
	}

	h.svc.Motion.SetAwaitCompletion(false)
	if h.svc.Motion.AwaitCompletion() {
		t.Error("AwaitCompletion not updated")
	}
}

func TestPlayPose_InvalidArgument(t *testing.T) {
	h := newHarness(t, sim.Options{})
	ctx := testCtx(t)

	tests := []struct {
		name string
		req  *sotapb.PlayPoseRequest
	}{
		{"missing pose", &sotapb.PlayPoseRequest{TimeMs: 10}},
		{"servo id out of range", &sotapb.PlayPoseRequest{Pose: &sotapb.Pose{Servos: []*sotapb.Servo{{Id: 42}}}}},
		{"negative time", &sotapb.PlayPoseRequest{Pose: &sotapb.Pose{}, TimeMs: -1}},
		{"led overflow", &sotapb.PlayPoseRequest{Pose: &sotapb.Pose{Led: &sotapb.LedState{Mouth: 300}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.motion.PlayPose(ctx, tc.req)
			wantCode(t, err, codes.InvalidArgument)
		})
	}
	for _, c := range h.robot.Calls() {
		if c == "Play" {
			t.Error("invalid request reached the device")
		}
	}
}

func TestBodyState(t *testing.T) {
	h := newHarness(t, sim.Options{BatteryMillivolts: 7100})
	ctx := testCtx(t)
	h.robot.SetCharging(true)
	h.robot.Press(device.Buttons{Power: true, VolDown: true})

	power, err := h.motion.GetPowerStatus(ctx, &sotapb.GetPowerStatusRequest{})
	if err != nil {
		t.Fatalf("GetPowerStatus: %v", err)
	}
	if diff := cmp.Diff(&sotapb.GetPowerStatusResponse{BatteryVoltageMv: 7100, IsCharging: true}, power); diff != "" {
		t.Errorf("power mismatch (-want +got):\n%s", diff)
	}

	buttons, err := h.motion.GetButtonState(ctx, &sotapb.GetButtonStateRequest{})
	if err != nil {
		t.Fatalf("GetButtonState: %v", err)
	}
	if diff := cmp.Diff(&sotapb.GetButtonStateResponse{IsPowerPressed: true, IsVolDownPressed: true}, buttons); diff != "" {
		t.Errorf("buttons mismatch (-want +got):\n%s", diff)
	}
}

func TestCollisionAndMouthSync(t *testing.T) {
	h := newHarness(t, sim.Options{})
	ctx := testCtx(t)

	if _, err := h.motion.EnableCollisionDetection(ctx, &sotapb.EnableCollisionDetectionRequest{}); err != nil {
		t.Fatalf("EnableCollisionDetection: %v", err)
	}
	if !h.robot.CollisionDetection() {
		t.Error("collision detection not enabled")
	}
	if _, err := h.motion.SetCollisionDetection(ctx, &sotapb.SetCollisionDetectionRequest{Enabled: false}); err != nil {
		t.Fatalf("SetCollisionDetection: %v", err)
	}
	if h.robot.CollisionDetection() {
		t.Error("collision detection still enabled")
	}
	if _, err := h.motion.SetMouthLedVoiceSync(ctx, &sotapb.SetMouthLedVoiceSyncRequest{Enabled: true}); err != nil {
		t.Fatalf("SetMouthLedVoiceSync: %v", err)
	}
	if !h.robot.MouthLEDVoiceSync() {
		t.Error("mouth LED voice sync not enabled")
	}
}

func TestDisconnectedRobotIsUnavailable(t *testing.T) {
	h := newHarness(t, sim.Options{})
	h.robot.Disconnect()
	_, err := h.motion.ServoOn(testCtx(t), &sotapb.ServoOnRequest{})
	wantCode(t, err, codes.Unavailable)
}

func TestShutdownRefusesWork(t *testing.T) {
	h := newHarness(t, sim.Options{})
	ctx := testCtx(t)
	if err := h.worker.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	_, err := h.motion.ServoOff(ctx, &sotapb.ServoOffRequest{})
	wantCode(t, err, codes.Unavailable)
}

func TestDeadlineWhileQueued(t *testing.T) {
	h := newHarness(t, sim.Options{})
	ctx := testCtx(t)

	running, gate := make(chan struct{}), make(chan struct{})
	held := make(chan error, 1)
	go func() {
		held <- kernel.Do(context.Background(), h.worker, "hold", func(*device.Context) error {
			close(running)
			<-gate
			return nil
		})
	}()
	<-running

	short, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	_, err := h.motion.ServoOn(short, &sotapb.ServoOnRequest{})
	wantCode(t, err, codes.DeadlineExceeded)

	close(gate)
	if err := <-held; err != nil {
		t.Fatalf("hold: %v", err)
	}
	if _, err := h.motion.IsEndInterAll(ctx, &sotapb.IsEndInterAllRequest{}); err != nil {
		t.Fatalf("IsEndInterAll: %v", err)
	}
	if h.robot.ServoPowered() {
		t.Error("expired ServoOn ran after the worker was released")
	}
}

// ── expressive motion and speech ─────────────────────────────────────────────

func TestSayWithMotion(t *testing.T) {
	h := newHarness(t, sim.Options{SpeechRate: time.Millisecond})
	ctx := testCtx(t)

	_, err := h.expressive.SayWithMotion(ctx, &sotapb.SayWithMotionRequest{
		Text:   "hello there",
		Scene:  ptr("greeting"),
		Config: &sotapb.SpeechConfig{SpeechRate: 100, Pitch: 100, Intonation: 100, LanguageCode: ptr("en")},
	})
	if err != nil {
		t.Fatalf("SayWithMotion: %v", err)
	}
	if diff := cmp.Diff([]string{"hello there"}, h.robot.Said()); diff != "" {
		t.Errorf("said mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"greeting"}, h.robot.Scenes()); diff != "" {
		t.Errorf("scenes mismatch (-want +got):\n%s", diff)
	}
	if _, localize := h.robot.Language(); localize != "en" {
		t.Errorf("synthesis language = %q, want en", localize)
	}

	_, err = h.expressive.SayWithMotion(ctx, &sotapb.SayWithMotionRequest{Text: "  "})
	wantCode(t, err, codes.InvalidArgument)
}

func TestSayWithMotion_LanguageWithoutCapability(t *testing.T) {
	h := newHarness(t, sim.Options{WithoutLocalize: true, SpeechRate: time.Millisecond})
	_, err := h.expressive.SayWithMotion(testCtx(t), &sotapb.SayWithMotionRequest{
		Text:   "konnichiwa",
		Config: &sotapb.SpeechConfig{LanguageCode: ptr("ja")},
	})
	if err != nil {
		t.Fatalf("SayWithMotion: %v", err)
	}
	if _, localize := h.robot.Language(); localize != "" {
		t.Errorf("synthesis language = %q, want unchanged", localize)
	}
}

func TestPlayScene(t *testing.T) {
	h := newHarness(t, sim.Options{})
	ctx := testCtx(t)
	if _, err := h.expressive.PlayScene(ctx, &sotapb.PlaySceneRequest{Scene: "bow", TimeMs: 100}); err != nil {
		t.Fatalf("PlayScene: %v", err)
	}
	if diff := cmp.Diff([]string{"bow"}, h.robot.Scenes()); diff != "" {
		t.Errorf("scenes mismatch (-want +got):\n%s", diff)
	}
	_, err := h.expressive.PlayScene(ctx, &sotapb.PlaySceneRequest{})
	wantCode(t, err, codes.InvalidArgument)
}

func TestIdlingIsUnimplemented(t *testing.T) {
	h := newHarness(t, sim.Options{})
	ctx := testCtx(t)
	_, err := h.expressive.StartIdling(ctx, &sotapb.StartIdlingRequest{})
	wantCode(t, err, codes.Unimplemented)
	_, err = h.expressive.StopIdling(ctx, &sotapb.StopIdlingRequest{})
	wantCode(t, err, codes.Unimplemented)
}

// ── playback ─────────────────────────────────────────────────────────────────

func TestSynthesizeThenPlayback(t *testing.T) {
	h := newHarness(t, sim.Options{})
	ctx := testCtx(t)

	tts, err := h.tts.GetTTSData(ctx, &sotapb.GetTTSDataRequest{
		Text:   "hello",
		Config: &sotapb.SpeechConfig{SpeechRate: 100, Pitch: 100, Intonation: 100},
	})
	if err != nil {
		t.Fatalf("GetTTSData: %v", err)
	}
	if len(tts.AudioData) == 0 {
		t.Fatal("no audio returned")
	}
	length, err := audio.Duration(tts.AudioData)
	if err != nil {
		t.Fatalf("synthesized audio is not WAV: %v", err)
	}

	play, err := h.playback.PlayAudio(ctx, &sotapb.PlayAudioRequest{AudioData: tts.AudioData, WaitForCompletion: ptr(false)})
	if err != nil {
		t.Fatalf("PlayAudio: %v", err)
	}
	if !play.Success || play.PlaybackId == "" {
		t.Fatalf("PlayAudio = %+v, want success with an id", play)
	}

	byID := &sotapb.IsAudioPlayingRequest{PlaybackId: ptr(play.PlaybackId)}
	st, err := h.playback.IsAudioPlaying(ctx, byID)
	if err != nil {
		t.Fatalf("IsAudioPlaying: %v", err)
	}
	if !st.IsPlaying {
		t.Error("IsAudioPlaying = false right after start")
	}

	time.Sleep(length + 50*time.Millisecond)
	st, err = h.playback.IsAudioPlaying(ctx, byID)
	if err != nil {
		t.Fatalf("IsAudioPlaying: %v", err)
	}
	if st.IsPlaying {
		t.Error("IsAudioPlaying = true after the audio ended")
	}
	if n := h.players.Len(); n != 0 {
		t.Errorf("registry holds %d entries, want finished playback pruned", n)
	}
}

func TestStopAllPlayback(t *testing.T) {
	h := newHarness(t, sim.Options{})
	ctx := testCtx(t)

	var wg sync.WaitGroup
	ids := make([]string, 2)
	for i := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := h.playback.PlayAudio(ctx, &sotapb.PlayAudioRequest{AudioData: wav(5 * time.Second)})
			if err != nil {
				t.Errorf("PlayAudio: %v", err)
				return
			}
			ids[i] = resp.PlaybackId
		}()
	}
	wg.Wait()
	if ids[0] == "" || ids[1] == "" || ids[0] == ids[1] {
		t.Fatalf("playback ids = %q, want two distinct ids", ids)
	}

	if _, err := h.playback.StopAudio(ctx, &sotapb.StopAudioRequest{}); err != nil {
		t.Fatalf("StopAudio: %v", err)
	}
	st, err := h.playback.IsAudioPlaying(ctx, &sotapb.IsAudioPlayingRequest{})
	if err != nil {
		t.Fatalf("IsAudioPlaying: %v", err)
	}
	if st.IsPlaying {
		t.Error("IsAudioPlaying = true after StopAudio")
	}
	if n := h.players.Len(); n != 0 {
		t.Errorf("registry holds %d entries after stop all", n)
	}
}

func TestStopOnePlayback(t *testing.T) {
	h := newHarness(t, sim.Options{})
	ctx := testCtx(t)

	a, err := h.playback.PlayAudio(ctx, &sotapb.PlayAudioRequest{AudioData: wav(5 * time.Second)})
	if err != nil {
		t.Fatalf("PlayAudio: %v", err)
	}
	b, err := h.playback.PlayAudio(ctx, &sotapb.PlayAudioRequest{AudioData: wav(5 * time.Second)})
	if err != nil {
		t.Fatalf("PlayAudio: %v", err)
	}

	if _, err := h.playback.StopAudio(ctx, &sotapb.StopAudioRequest{PlaybackId: ptr(a.PlaybackId)}); err != nil {
		t.Fatalf("StopAudio: %v", err)
	}
	if _, err := h.playback.StopAudio(ctx, &sotapb.StopAudioRequest{PlaybackId: ptr("unknown")}); err != nil {
		t.Fatalf("StopAudio(unknown): %v", err)
	}

	for id, want := range map[string]bool{a.PlaybackId: false, b.PlaybackId: true} {
		st, err := h.playback.IsAudioPlaying(ctx, &sotapb.IsAudioPlayingRequest{PlaybackId: ptr(id)})
		if err != nil {
			t.Fatalf("IsAudioPlaying: %v", err)
		}
		if st.IsPlaying != want {
			t.Errorf("IsAudioPlaying(%s) = %v, want %v", id, st.IsPlaying, want)
		}
	}
	if n, err := h.svc.Playback.StopAll(ctx); err != nil || n != 1 {
		t.Errorf("StopAll = (%d, %v), want (1, nil)", n, err)
	}
}

func TestPlayAudio_SaveFileAndWait(t *testing.T) {
	h := newHarness(t, sim.Options{})
	ctx := testCtx(t)
	data := wav(30 * time.Millisecond)

	resp, err := h.playback.PlayAudio(ctx, &sotapb.PlayAudioRequest{
		AudioData:         data,
		WaitForCompletion: ptr(true),
		SaveFile:          ptr(true),
	})
	if err != nil {
		t.Fatalf("PlayAudio: %v", err)
	}
	if diff := cmp.Diff(&sotapb.PlayAudioResponse{Success: true}, resp); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
	saved, err := os.ReadFile(h.playFile)
	if err != nil {
		t.Fatalf("staging file: %v", err)
	}
	if !cmp.Equal(data, saved) {
		t.Error("staging file does not hold the request audio")
	}
	if h.players.Len() != 0 {
		t.Error("waited playback was registered")
	}
}

func TestPlayLocalAudio(t *testing.T) {
	h := newHarness(t, sim.Options{})
	ctx := testCtx(t)

	path := filepath.Join(t.TempDir(), "chime.wav")
	if err := os.WriteFile(path, wav(2*time.Second), 0o644); err != nil {
		t.Fatal(err)
	}
	resp, err := h.playback.PlayLocalAudio(ctx, &sotapb.PlayLocalAudioRequest{LocalFilepath: path})
	if err != nil {
		t.Fatalf("PlayLocalAudio: %v", err)
	}
	if !resp.Success || resp.PlaybackId == "" {
		t.Errorf("PlayLocalAudio = %+v", resp)
	}

	missing, err := h.playback.PlayLocalAudio(ctx, &sotapb.PlayLocalAudioRequest{LocalFilepath: filepath.Join(t.TempDir(), "missing.wav")})
	if err != nil {
		t.Fatalf("PlayLocalAudio(missing): %v", err)
	}
	if missing.Success {
		t.Error("missing file reported as played")
	}

	_, err = h.playback.PlayLocalAudio(ctx, &sotapb.PlayLocalAudioRequest{})
	wantCode(t, err, codes.InvalidArgument)
}

func TestPlayAudio_Rejected(t *testing.T) {
	h := newHarness(t, sim.Options{})
	ctx := testCtx(t)

	resp, err := h.playback.PlayAudio(ctx, &sotapb.PlayAudioRequest{AudioData: []byte("not a wav file")})
	if err != nil {
		t.Fatalf("PlayAudio: %v", err)
	}
	if resp.Success || resp.PlaybackId != "" {
		t.Errorf("PlayAudio = %+v, want unsuccessful without id", resp)
	}

	_, err = h.playback.PlayAudio(ctx, &sotapb.PlayAudioRequest{})
	wantCode(t, err, codes.InvalidArgument)
}

// ── recording ────────────────────────────────────────────────────────────────

func TestRecordThenStop(t *testing.T) {
	h := newHarness(t, sim.Options{})
	ctx := testCtx(t)

	start, err := h.recording.StartRecording(ctx, &sotapb.StartRecordingRequest{DurationMs: 2000})
	if err != nil {
		t.Fatalf("StartRecording: %v", err)
	}
	if !start.Success {
		t.Fatal("StartRecording success = false")
	}
	st, err := h.recording.IsRecording(ctx, &sotapb.IsRecordingRequest{})
	if err != nil || !st.IsRecording {
		t.Fatalf("IsRecording = (%v, %v), want true", st, err)
	}

	time.Sleep(100 * time.Millisecond)
	stop, err := h.recording.StopRecording(ctx, &sotapb.StopRecordingRequest{})
	if err != nil {
		t.Fatalf("StopRecording: %v", err)
	}
	if len(stop.AudioData) == 0 {
		t.Error("StopRecording returned no audio")
	}
	if _, err := os.Stat(h.recFile); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("capture file still present: %v", err)
	}

	_, err = h.recording.StopRecording(ctx, &sotapb.StopRecordingRequest{})
	wantCode(t, err, codes.NotFound)
}

func TestStartRecording_InvalidDuration(t *testing.T) {
	h := newHarness(t, sim.Options{})
	_, err := h.recording.StartRecording(testCtx(t), &sotapb.StartRecordingRequest{DurationMs: 0})
	wantCode(t, err, codes.InvalidArgument)
}

// ── recognition ──────────────────────────────────────────────────────────────

func TestRecognize(t *testing.T) {
	h := newHarness(t, sim.Options{})
	ctx := testCtx(t)

	h.robot.Hear("good morning")
	res, err := h.recognition.Recognize(ctx, &sotapb.RecognizeRequest{TimeoutMs: 500, LanguageCode: ptr("en")})
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if !res.Recognized || res.BasicResult != "good morning" {
		t.Errorf("Recognize = %+v", res)
	}
	if len(res.SentenceList) != 1 || len(res.SentenceList[0].WordList) != 2 {
		t.Errorf("sentence list = %+v", res.SentenceList)
	}
	if lang, _ := h.robot.Language(); lang != "en" {
		t.Errorf("recognition language = %q, want en", lang)
	}

	silent, err := h.recognition.Recognize(ctx, &sotapb.RecognizeRequest{TimeoutMs: 10})
	if err != nil {
		t.Fatalf("Recognize(silence): %v", err)
	}
	if silent.Recognized {
		t.Error("silence recognized")
	}

	_, err = h.recognition.Recognize(ctx, &sotapb.RecognizeRequest{TimeoutMs: -5})
	wantCode(t, err, codes.InvalidArgument)
}

func TestRecognizeStructured(t *testing.T) {
	h := newHarness(t, sim.Options{})
	ctx := testCtx(t)
	retry := sotapb.RetryRequest{TimeoutMs: 500, RetryCount: 1}

	h.robot.Hear("yes")
	yn, err := h.recognition.RecognizeYesOrNo(ctx, &sotapb.RecognizeYesOrNoRequest{RetryRequest: retry})
	if err != nil {
		t.Fatalf("RecognizeYesOrNo: %v", err)
	}
	if yn.Answer != sotapb.YesNoAnswer_YES {
		t.Errorf("answer = %v, want YES", yn.Answer)
	}

	h.robot.Hear("my name is Taro")
	name, err := h.recognition.RecognizeName(ctx, &sotapb.RecognizeNameRequest{RetryRequest: retry})
	if err != nil {
		t.Fatalf("RecognizeName: %v", err)
	}
	if name.Name == nil || *name.Name != "Taro" {
		t.Errorf("name = %v, want Taro", name.Name)
	}

	h.robot.Hear("Alice and Bob")
	names, err := h.recognition.RecognizeNames(ctx, &sotapb.RecognizeNamesRequest{RetryRequest: retry})
	if err != nil {
		t.Fatalf("RecognizeNames: %v", err)
	}
	if diff := cmp.Diff([]string{"Alice", "Bob"}, names.Names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	resp, err := h.recognition.RecognizeGeneralResponse(ctx, &sotapb.RecognizeGeneralResponseRequest{
		RetryRequest: sotapb.RetryRequest{TimeoutMs: 10},
	})
	if err != nil {
		t.Fatalf("RecognizeGeneralResponse: %v", err)
	}
	if resp.Response != nil {
		t.Errorf("response = %q, want none", *resp.Response)
	}

	_, err = h.recognition.RecognizeName(ctx, &sotapb.RecognizeNameRequest{RetryRequest: sotapb.RetryRequest{RetryCount: -1}})
	wantCode(t, err, codes.InvalidArgument)
}

// ── confinement ──────────────────────────────────────────────────────────────

func TestConcurrentRequestsStayOnWorker(t *testing.T) {
	h := newHarness(t, sim.Options{})
	ctx := testCtx(t)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var err error
			switch i % 4 {
			case 0:
				_, err = h.motion.GetCurrentPose(ctx, &sotapb.GetCurrentPoseRequest{})
			case 1:
				_, err = h.motion.PlayPose(ctx, &sotapb.PlayPoseRequest{
					Pose:   &sotapb.Pose{Servos: []*sotapb.Servo{{Id: sotapb.ServoID_HEAD_R, Angle: int32(i)}}},
					TimeMs: 5,
				})
			case 2:
				_, err = h.playback.PlayAudio(ctx, &sotapb.PlayAudioRequest{AudioData: wav(20 * time.Millisecond)})
			case 3:
				_, err = h.playback.IsAudioPlaying(ctx, &sotapb.IsAudioPlayingRequest{})
			}
			if err != nil {
				t.Errorf("request %d: %v", i, err)
			}
		}()
	}
	wg.Wait()

	if v := h.robot.Violations(); v != 0 {
		t.Errorf("%d device calls ran off the worker thread", v)
	}
}
