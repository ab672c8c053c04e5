// Command sotactl exercises a running sotabridge: it powers the servos,
// plays a few poses, synthesizes speech and plays it back, and optionally
// listens through the robot microphone.
//
// Usage:
//
//	sotactl [flags] host[:port]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/MrWong99/sotabridge/pkg/audio"
	"github.com/MrWong99/sotabridge/pkg/sotapb"
)

const defaultPort = 8080

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// options holds the parsed command line.
type options struct {
	addr      string
	text      string
	pause     time.Duration
	timeout   time.Duration
	recognize time.Duration
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("sotactl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	port := fs.Int("port", 0, "bridge port (default 8080, or the port in host:port)")
	var o options
	fs.StringVar(&o.text, "text", "Hello, I am Sota. Speaking through gRPC.", "text to synthesize and play back")
	fs.DurationVar(&o.pause, "pause", time.Second, "pause between poses")
	fs.DurationVar(&o.timeout, "timeout", 30*time.Second, "per-call timeout")
	fs.DurationVar(&o.recognize, "recognize", 0, "listen for speech for this long after playback (0 skips)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: sotactl [flags] host[:port]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return o, errors.New("exactly one host argument is required")
	}
	addr, err := target(fs.Arg(0), *port)
	if err != nil {
		return o, err
	}
	o.addr = addr
	return o, nil
}

// target resolves host[:port] and an optional -port override into a dial
// address. The flag wins over a port in the argument.
func target(hostArg string, port int) (string, error) {
	host, p := hostArg, defaultPort
	if h, ps, err := net.SplitHostPort(hostArg); err == nil {
		n, err := strconv.Atoi(ps)
		if err != nil {
			return "", fmt.Errorf("invalid port in %q", hostArg)
		}
		host, p = h, n
	}
	if port != 0 {
		p = port
	}
	if host == "" {
		return "", fmt.Errorf("missing host in %q", hostArg)
	}
	if p <= 0 || p > 65535 {
		return "", fmt.Errorf("port %d out of range", p)
	}
	return net.JoinHostPort(host, strconv.Itoa(p)), nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "sotactl: %v\n", err)
		return 2
	}

	conn, err := grpc.NewClient(o.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		fmt.Fprintf(stderr, "sotactl: %v\n", err)
		return 1
	}
	defer conn.Close()

	fmt.Fprintf(stdout, "Connecting to gRPC server at %s...\n", o.addr)
	c := &checker{
		out:         stdout,
		opts:        o,
		motion:      sotapb.NewMotionServiceClient(conn),
		tts:         sotapb.NewTextToSpeechServiceClient(conn),
		playback:    sotapb.NewPlaybackServiceClient(conn),
		recognition: sotapb.NewSpeechRecognitionServiceClient(conn),
	}
	failed := c.motionTest(ctx)
	wav, err := c.ttsTest(ctx)
	if err != nil {
		failed++
	}
	failed += c.playbackTest(ctx, wav)
	if o.recognize > 0 {
		failed += c.recognitionTest(ctx)
	}

	if failed > 0 {
		fmt.Fprintf(stdout, "\n--- Finished with %d failed call(s) ---\n", failed)
		return 1
	}
	fmt.Fprintln(stdout, "\n--- All tests finished ---")
	return 0
}

type checker struct {
	out  io.Writer
	opts options

	motion      *sotapb.MotionServiceClient
	tts         *sotapb.TextToSpeechServiceClient
	playback    *sotapb.PlaybackServiceClient
	recognition *sotapb.SpeechRecognitionServiceClient
}

// call runs fn with the per-call timeout and reports an RPC failure.
func (c *checker) call(ctx context.Context, what string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, c.opts.timeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		st, _ := status.FromError(err)
		fmt.Fprintf(c.out, "An RPC error occurred in %s: %s (%s)\n", what, st.Message(), st.Code())
		return err
	}
	return nil
}

func (c *checker) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func servo(id sotapb.ServoID, angle int32) *sotapb.Servo {
	return &sotapb.Servo{Id: id, Angle: angle}
}

// motionTest powers the servos, raises both arms, tilts the head with the
// LEDs lit and powers down again.
func (c *checker) motionTest(ctx context.Context) int {
	fmt.Fprintln(c.out, "\n--- Testing MotionService ---")
	white := &sotapb.Color{Red: 255, Green: 255, Blue: 255}
	steps := []struct {
		name string
		req  *sotapb.PlayPoseRequest
	}{
		{"banzai", &sotapb.PlayPoseRequest{TimeMs: 1000, Pose: &sotapb.Pose{Servos: []*sotapb.Servo{
			servo(sotapb.ServoID_BODY_Y, 0),
			servo(sotapb.ServoID_L_SHOULDER, -900),
			servo(sotapb.ServoID_L_ELBOW, 0),
			servo(sotapb.ServoID_R_SHOULDER, 900),
			servo(sotapb.ServoID_R_ELBOW, 0),
			servo(sotapb.ServoID_HEAD_Y, 0),
			servo(sotapb.ServoID_HEAD_P, 0),
			servo(sotapb.ServoID_HEAD_R, 0),
		}}}},
		{"lights", &sotapb.PlayPoseRequest{TimeMs: 1000, Pose: &sotapb.Pose{
			Servos: []*sotapb.Servo{servo(sotapb.ServoID_HEAD_R, 0)},
			Led:    &sotapb.LedState{LeftEye: white, RightEye: white, Mouth: 255, PowerButton: white},
		}}},
		{"tilt", &sotapb.PlayPoseRequest{TimeMs: 500, Pose: &sotapb.Pose{Servos: []*sotapb.Servo{
			servo(sotapb.ServoID_HEAD_R, -200),
		}}}},
		{"reset", &sotapb.PlayPoseRequest{TimeMs: 1000, Pose: &sotapb.Pose{Servos: []*sotapb.Servo{
			servo(sotapb.ServoID_HEAD_R, 0),
		}}}},
	}

	fmt.Fprintln(c.out, "Calling ServoOn...")
	if err := c.call(ctx, "MotionService", func(ctx context.Context) error {
		_, err := c.motion.ServoOn(ctx, &sotapb.ServoOnRequest{})
		return err
	}); err != nil {
		return 1
	}
	fmt.Fprintln(c.out, "ServoOn successful.")

	failed := 0
	for _, s := range steps {
		fmt.Fprintf(c.out, "Calling PlayPose (%s)...\n", s.name)
		err := c.call(ctx, "MotionService", func(ctx context.Context) error {
			resp, err := c.motion.PlayPose(ctx, s.req)
			if err == nil {
				fmt.Fprintf(c.out, "PlayPose sent. success=%t\n", resp.Success)
			}
			return err
		})
		if err != nil {
			failed++
		}
		c.sleep(ctx, c.opts.pause)
	}

	fmt.Fprintln(c.out, "Calling ServoOff...")
	if err := c.call(ctx, "MotionService", func(ctx context.Context) error {
		_, err := c.motion.ServoOff(ctx, &sotapb.ServoOffRequest{})
		return err
	}); err != nil {
		return failed + 1
	}
	fmt.Fprintln(c.out, "ServoOff successful.")
	return failed
}

// ttsTest synthesizes the configured text and returns the WAV payload.
func (c *checker) ttsTest(ctx context.Context) ([]byte, error) {
	fmt.Fprintln(c.out, "\n--- Testing TextToSpeechService ---")
	fmt.Fprintf(c.out, "Calling GetTTSData with text: %q\n", c.opts.text)
	var wav []byte
	err := c.call(ctx, "TextToSpeechService", func(ctx context.Context) error {
		resp, err := c.tts.GetTTSData(ctx, &sotapb.GetTTSDataRequest{
			Text:   c.opts.text,
			Config: &sotapb.SpeechConfig{Pitch: 8, Intonation: 8, SpeechRate: 8},
		})
		if err != nil {
			return err
		}
		wav = resp.AudioData
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(wav) == 0 {
		fmt.Fprintln(c.out, "Synthesize failed: empty audio.")
		return nil, errors.New("empty audio")
	}
	d, err := audio.Duration(wav)
	if err != nil {
		fmt.Fprintf(c.out, "Synthesize returned an unreadable WAV: %v\n", err)
		return nil, err
	}
	fmt.Fprintf(c.out, "Synthesize successful. Got %d bytes of audio data (%s).\n", len(wav), d.Round(time.Millisecond))
	return wav, nil
}

// playbackTest plays audio to completion.
func (c *checker) playbackTest(ctx context.Context, wav []byte) int {
	fmt.Fprintln(c.out, "\n--- Testing PlaybackService ---")
	if len(wav) == 0 {
		fmt.Fprintln(c.out, "No audio data received from TTS. Skipping test.")
		return 0
	}
	wait := true
	fmt.Fprintln(c.out, "Calling PlayAudio with synthesized data...")
	err := c.call(ctx, "PlaybackService", func(ctx context.Context) error {
		resp, err := c.playback.PlayAudio(ctx, &sotapb.PlayAudioRequest{AudioData: wav, WaitForCompletion: &wait})
		if err == nil {
			fmt.Fprintf(c.out, "PlayAudio successful: %t\n", resp.Success)
		}
		return err
	})
	if err != nil {
		return 1
	}
	return 0
}

// recognitionTest listens once and prints what was heard.
func (c *checker) recognitionTest(ctx context.Context) int {
	fmt.Fprintln(c.out, "\n--- Testing SpeechRecognitionService ---")
	fmt.Fprintf(c.out, "Calling Recognize... Please speak within %s.\n", c.opts.recognize)
	err := c.call(ctx, "SpeechRecognitionService", func(ctx context.Context) error {
		resp, err := c.recognition.Recognize(ctx, &sotapb.RecognizeRequest{TimeoutMs: int32(c.opts.recognize.Milliseconds())})
		if err == nil {
			fmt.Fprintf(c.out, "recognized=%t basic_result=%q sentences=%d\n",
				resp.Recognized, resp.BasicResult, len(resp.SentenceList))
		}
		return err
	})
	if err != nil {
		return 1
	}
	return 0
}
