package sotapb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Fully qualified service names.
const (
	MotionServiceName            = "sotagrpc.v1.MotionService"
	PlaybackServiceName          = "sotagrpc.v1.PlaybackService"
	RecordingServiceName         = "sotagrpc.v1.RecordingService"
	MotionAsSotaWishServiceName  = "sotagrpc.v1.MotionAsSotaWishService"
	TextToSpeechServiceName      = "sotagrpc.v1.TextToSpeechService"
	SpeechRecognitionServiceName = "sotagrpc.v1.SpeechRecognitionService"
)

// unary builds a method descriptor that decodes the request with the
// server codec and routes it through the interceptor chain.
func unary[S any, Req any, PReq interface {
	*Req
	Message
}, Resp any](service, method string, call func(S, context.Context, PReq) (Resp, error)) grpc.MethodDesc {
	full := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				resp, err := call(srv.(S), ctx, in)
				return resp, err
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
			handler := func(ctx context.Context, req any) (any, error) {
				resp, err := call(srv.(S), ctx, req.(PReq))
				return resp, err
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// invoke performs a unary call with [Codec] forced on the call.
func invoke[Resp any, PResp interface {
	*Resp
	Message
}](ctx context.Context, cc grpc.ClientConnInterface, service, method string, in Message, opts []grpc.CallOption) (PResp, error) {
	out := PResp(new(Resp))
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	if err := cc.Invoke(ctx, "/"+service+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func unimplemented(method string) error {
	return status.Error(codes.Unimplemented, "method "+method+" not implemented")
}

// ---------------------------------------------------------------------------
// MotionService
// ---------------------------------------------------------------------------

// MotionServiceServer drives servos, LEDs and reads device state.
type MotionServiceServer interface {
	ServoOn(context.Context, *ServoOnRequest) (*ServoOnResponse, error)
	ServoOff(context.Context, *ServoOffRequest) (*ServoOffResponse, error)
	PlayPose(context.Context, *PlayPoseRequest) (*PlayPoseResponse, error)
	GetCurrentPose(context.Context, *GetCurrentPoseRequest) (*Pose, error)
	IsEndInterAll(context.Context, *IsEndInterAllRequest) (*IsEndInterAllResponse, error)
	GetPowerStatus(context.Context, *GetPowerStatusRequest) (*GetPowerStatusResponse, error)
	GetButtonState(context.Context, *GetButtonStateRequest) (*GetButtonStateResponse, error)
	SetCollisionDetection(context.Context, *SetCollisionDetectionRequest) (*SetCollisionDetectionResponse, error)
	EnableCollisionDetection(context.Context, *EnableCollisionDetectionRequest) (*EnableCollisionDetectionResponse, error)
	DisableCollisionDetection(context.Context, *DisableCollisionDetectionRequest) (*DisableCollisionDetectionResponse, error)
	SetMouthLedVoiceSync(context.Context, *SetMouthLedVoiceSyncRequest) (*SetMouthLedVoiceSyncResponse, error)
}

// UnimplementedMotionServiceServer answers every method with Unimplemented.
type UnimplementedMotionServiceServer struct{}

func (UnimplementedMotionServiceServer) ServoOn(context.Context, *ServoOnRequest) (*ServoOnResponse, error) {
	return nil, unimplemented("ServoOn")
}
func (UnimplementedMotionServiceServer) ServoOff(context.Context, *ServoOffRequest) (*ServoOffResponse, error) {
	return nil, unimplemented("ServoOff")
}
func (UnimplementedMotionServiceServer) PlayPose(context.Context, *PlayPoseRequest) (*PlayPoseResponse, error) {
	return nil, unimplemented("PlayPose")
}
func (UnimplementedMotionServiceServer) GetCurrentPose(context.Context, *GetCurrentPoseRequest) (*Pose, error) {
	return nil, unimplemented("GetCurrentPose")
}
func (UnimplementedMotionServiceServer) IsEndInterAll(context.Context, *IsEndInterAllRequest) (*IsEndInterAllResponse, error) {
	return nil, unimplemented("IsEndInterAll")
}
func (UnimplementedMotionServiceServer) GetPowerStatus(context.Context, *GetPowerStatusRequest) (*GetPowerStatusResponse, error) {
	return nil, unimplemented("GetPowerStatus")
}
func (UnimplementedMotionServiceServer) GetButtonState(context.Context, *GetButtonStateRequest) (*GetButtonStateResponse, error) {
	return nil, unimplemented("GetButtonState")
}
func (UnimplementedMotionServiceServer) SetCollisionDetection(context.Context, *SetCollisionDetectionRequest) (*SetCollisionDetectionResponse, error) {
	return nil, unimplemented("SetCollisionDetection")
}
func (UnimplementedMotionServiceServer) EnableCollisionDetection(context.Context, *EnableCollisionDetectionRequest) (*EnableCollisionDetectionResponse, error) {
	return nil, unimplemented("EnableCollisionDetection")
}
func (UnimplementedMotionServiceServer) DisableCollisionDetection(context.Context, *DisableCollisionDetectionRequest) (*DisableCollisionDetectionResponse, error) {
	return nil, unimplemented("DisableCollisionDetection")
}
func (UnimplementedMotionServiceServer) SetMouthLedVoiceSync(context.Context, *SetMouthLedVoiceSyncRequest) (*SetMouthLedVoiceSyncResponse, error) {
	return nil, unimplemented("SetMouthLedVoiceSync")
}

// MotionService_ServiceDesc is the descriptor for MotionService.
var MotionService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: MotionServiceName,
	HandlerType: (*MotionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MotionServiceName, "ServoOn", MotionServiceServer.ServoOn),
		unary(MotionServiceName, "ServoOff", MotionServiceServer.ServoOff),
		unary(MotionServiceName, "PlayPose", MotionServiceServer.PlayPose),
		unary(MotionServiceName, "GetCurrentPose", MotionServiceServer.GetCurrentPose),
		unary(MotionServiceName, "IsEndInterAll", MotionServiceServer.IsEndInterAll),
		unary(MotionServiceName, "GetPowerStatus", MotionServiceServer.GetPowerStatus),
		unary(MotionServiceName, "GetButtonState", MotionServiceServer.GetButtonState),
		unary(MotionServiceName, "SetCollisionDetection", MotionServiceServer.SetCollisionDetection),
		unary(MotionServiceName, "EnableCollisionDetection", MotionServiceServer.EnableCollisionDetection),
		unary(MotionServiceName, "DisableCollisionDetection", MotionServiceServer.DisableCollisionDetection),
		unary(MotionServiceName, "SetMouthLedVoiceSync", MotionServiceServer.SetMouthLedVoiceSync),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sotagrpc/v1/robotlib.proto",
}

func RegisterMotionServiceServer(s grpc.ServiceRegistrar, srv MotionServiceServer) {
	s.RegisterService(&MotionService_ServiceDesc, srv)
}

// MotionServiceClient is the client API for MotionService.
type MotionServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMotionServiceClient(cc grpc.ClientConnInterface) *MotionServiceClient {
	return &MotionServiceClient{cc: cc}
}

func (c *MotionServiceClient) ServoOn(ctx context.Context, in *ServoOnRequest, opts ...grpc.CallOption) (*ServoOnResponse, error) {
	return invoke[ServoOnResponse](ctx, c.cc, MotionServiceName, "ServoOn", in, opts)
}
func (c *MotionServiceClient) ServoOff(ctx context.Context, in *ServoOffRequest, opts ...grpc.CallOption) (*ServoOffResponse, error) {
	return invoke[ServoOffResponse](ctx, c.cc, MotionServiceName, "ServoOff", in, opts)
}
func (c *MotionServiceClient) PlayPose(ctx context.Context, in *PlayPoseRequest, opts ...grpc.CallOption) (*PlayPoseResponse, error) {
	return invoke[PlayPoseResponse](ctx, c.cc, MotionServiceName, "PlayPose", in, opts)
}
func (c *MotionServiceClient) GetCurrentPose(ctx context.Context, in *GetCurrentPoseRequest, opts ...grpc.CallOption) (*Pose, error) {
	return invoke[Pose](ctx, c.cc, MotionServiceName, "GetCurrentPose", in, opts)
}
func (c *MotionServiceClient) IsEndInterAll(ctx context.Context, in *IsEndInterAllRequest, opts ...grpc.CallOption) (*IsEndInterAllResponse, error) {
	return invoke[IsEndInterAllResponse](ctx, c.cc, MotionServiceName, "IsEndInterAll", in, opts)
}
func (c *MotionServiceClient) GetPowerStatus(ctx context.Context, in *GetPowerStatusRequest, opts ...grpc.CallOption) (*GetPowerStatusResponse, error) {
	return invoke[GetPowerStatusResponse](ctx, c.cc, MotionServiceName, "GetPowerStatus", in, opts)
}
func (c *MotionServiceClient) GetButtonState(ctx context.Context, in *GetButtonStateRequest, opts ...grpc.CallOption) (*GetButtonStateResponse, error) {
	return invoke[GetButtonStateResponse](ctx, c.cc, MotionServiceName, "GetButtonState", in, opts)
}
func (c *MotionServiceClient) SetCollisionDetection(ctx context.Context, in *SetCollisionDetectionRequest, opts ...grpc.CallOption) (*SetCollisionDetectionResponse, error) {
	return invoke[SetCollisionDetectionResponse](ctx, c.cc, MotionServiceName, "SetCollisionDetection", in, opts)
}
func (c *MotionServiceClient) EnableCollisionDetection(ctx context.Context, in *EnableCollisionDetectionRequest, opts ...grpc.CallOption) (*EnableCollisionDetectionResponse, error) {
	return invoke[EnableCollisionDetectionResponse](ctx, c.cc, MotionServiceName, "EnableCollisionDetection", in, opts)
}
func (c *MotionServiceClient) DisableCollisionDetection(ctx context.Context, in *DisableCollisionDetectionRequest, opts ...grpc.CallOption) (*DisableCollisionDetectionResponse, error) {
	return invoke[DisableCollisionDetectionResponse](ctx, c.cc, MotionServiceName, "DisableCollisionDetection", in, opts)
}
func (c *MotionServiceClient) SetMouthLedVoiceSync(ctx context.Context, in *SetMouthLedVoiceSyncRequest, opts ...grpc.CallOption) (*SetMouthLedVoiceSyncResponse, error) {
	return invoke[SetMouthLedVoiceSyncResponse](ctx, c.cc, MotionServiceName, "SetMouthLedVoiceSync", in, opts)
}

// ---------------------------------------------------------------------------
// PlaybackService
// ---------------------------------------------------------------------------

// PlaybackServiceServer plays wave audio on the robot speaker.
type PlaybackServiceServer interface {
	PlayAudio(context.Context, *PlayAudioRequest) (*PlayAudioResponse, error)
	PlayLocalAudio(context.Context, *PlayLocalAudioRequest) (*PlayAudioResponse, error)
	StopAudio(context.Context, *StopAudioRequest) (*StopAudioResponse, error)
	IsAudioPlaying(context.Context, *IsAudioPlayingRequest) (*IsAudioPlayingResponse, error)
}

type UnimplementedPlaybackServiceServer struct{}

func (UnimplementedPlaybackServiceServer) PlayAudio(context.Context, *PlayAudioRequest) (*PlayAudioResponse, error) {
	return nil, unimplemented("PlayAudio")
}
func (UnimplementedPlaybackServiceServer) PlayLocalAudio(context.Context, *PlayLocalAudioRequest) (*PlayAudioResponse, error) {
	return nil, unimplemented("PlayLocalAudio")
}
func (UnimplementedPlaybackServiceServer) StopAudio(context.Context, *StopAudioRequest) (*StopAudioResponse, error) {
	return nil, unimplemented("StopAudio")
}
func (UnimplementedPlaybackServiceServer) IsAudioPlaying(context.Context, *IsAudioPlayingRequest) (*IsAudioPlayingResponse, error) {
	return nil, unimplemented("IsAudioPlaying")
}

var PlaybackService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: PlaybackServiceName,
	HandlerType: (*PlaybackServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(PlaybackServiceName, "PlayAudio", PlaybackServiceServer.PlayAudio),
		unary(PlaybackServiceName, "PlayLocalAudio", PlaybackServiceServer.PlayLocalAudio),
		unary(PlaybackServiceName, "StopAudio", PlaybackServiceServer.StopAudio),
		unary(PlaybackServiceName, "IsAudioPlaying", PlaybackServiceServer.IsAudioPlaying),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sotagrpc/v1/robotlib.proto",
}

func RegisterPlaybackServiceServer(s grpc.ServiceRegistrar, srv PlaybackServiceServer) {
	s.RegisterService(&PlaybackService_ServiceDesc, srv)
}

type PlaybackServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewPlaybackServiceClient(cc grpc.ClientConnInterface) *PlaybackServiceClient {
	return &PlaybackServiceClient{cc: cc}
}

func (c *PlaybackServiceClient) PlayAudio(ctx context.Context, in *PlayAudioRequest, opts ...grpc.CallOption) (*PlayAudioResponse, error) {
	return invoke[PlayAudioResponse](ctx, c.cc, PlaybackServiceName, "PlayAudio", in, opts)
}
func (c *PlaybackServiceClient) PlayLocalAudio(ctx context.Context, in *PlayLocalAudioRequest, opts ...grpc.CallOption) (*PlayAudioResponse, error) {
	return invoke[PlayAudioResponse](ctx, c.cc, PlaybackServiceName, "PlayLocalAudio", in, opts)
}
func (c *PlaybackServiceClient) StopAudio(ctx context.Context, in *StopAudioRequest, opts ...grpc.CallOption) (*StopAudioResponse, error) {
	return invoke[StopAudioResponse](ctx, c.cc, PlaybackServiceName, "StopAudio", in, opts)
}
func (c *PlaybackServiceClient) IsAudioPlaying(ctx context.Context, in *IsAudioPlayingRequest, opts ...grpc.CallOption) (*IsAudioPlayingResponse, error) {
	return invoke[IsAudioPlayingResponse](ctx, c.cc, PlaybackServiceName, "IsAudioPlaying", in, opts)
}

// ---------------------------------------------------------------------------
// RecordingService
// ---------------------------------------------------------------------------

// RecordingServiceServer captures microphone audio.
type RecordingServiceServer interface {
	StartRecording(context.Context, *StartRecordingRequest) (*StartRecordingResponse, error)
	StopRecording(context.Context, *StopRecordingRequest) (*StopRecordingResponse, error)
	IsRecording(context.Context, *IsRecordingRequest) (*IsRecordingResponse, error)
}

type UnimplementedRecordingServiceServer struct{}

func (UnimplementedRecordingServiceServer) StartRecording(context.Context, *StartRecordingRequest) (*StartRecordingResponse, error) {
	return nil, unimplemented("StartRecording")
}
func (UnimplementedRecordingServiceServer) StopRecording(context.Context, *StopRecordingRequest) (*StopRecordingResponse, error) {
	return nil, unimplemented("StopRecording")
}
func (UnimplementedRecordingServiceServer) IsRecording(context.Context, *IsRecordingRequest) (*IsRecordingResponse, error) {
	return nil, unimplemented("IsRecording")
}

var RecordingService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: RecordingServiceName,
	HandlerType: (*RecordingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(RecordingServiceName, "StartRecording", RecordingServiceServer.StartRecording),
		unary(RecordingServiceName, "StopRecording", RecordingServiceServer.StopRecording),
		unary(RecordingServiceName, "IsRecording", RecordingServiceServer.IsRecording),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sotagrpc/v1/robotlib.proto",
}

func RegisterRecordingServiceServer(s grpc.ServiceRegistrar, srv RecordingServiceServer) {
	s.RegisterService(&RecordingService_ServiceDesc, srv)
}

type RecordingServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewRecordingServiceClient(cc grpc.ClientConnInterface) *RecordingServiceClient {
	return &RecordingServiceClient{cc: cc}
}

func (c *RecordingServiceClient) StartRecording(ctx context.Context, in *StartRecordingRequest, opts ...grpc.CallOption) (*StartRecordingResponse, error) {
	return invoke[StartRecordingResponse](ctx, c.cc, RecordingServiceName, "StartRecording", in, opts)
}
func (c *RecordingServiceClient) StopRecording(ctx context.Context, in *StopRecordingRequest, opts ...grpc.CallOption) (*StopRecordingResponse, error) {
	return invoke[StopRecordingResponse](ctx, c.cc, RecordingServiceName, "StopRecording", in, opts)
}
func (c *RecordingServiceClient) IsRecording(ctx context.Context, in *IsRecordingRequest, opts ...grpc.CallOption) (*IsRecordingResponse, error) {
	return invoke[IsRecordingResponse](ctx, c.cc, RecordingServiceName, "IsRecording", in, opts)
}

// ---------------------------------------------------------------------------
// MotionAsSotaWishService
// ---------------------------------------------------------------------------

// MotionAsSotaWishServiceServer speaks with gestures and plays scenes.
type MotionAsSotaWishServiceServer interface {
	SayWithMotion(context.Context, *SayWithMotionRequest) (*SayWithMotionResponse, error)
	PlayScene(context.Context, *PlaySceneRequest) (*PlaySceneResponse, error)
	StartIdling(context.Context, *StartIdlingRequest) (*StartIdlingResponse, error)
	StopIdling(context.Context, *StopIdlingRequest) (*StopIdlingResponse, error)
}

type UnimplementedMotionAsSotaWishServiceServer struct{}

func (UnimplementedMotionAsSotaWishServiceServer) SayWithMotion(context.Context, *SayWithMotionRequest) (*SayWithMotionResponse, error) {
	return nil, unimplemented("SayWithMotion")
}
func (UnimplementedMotionAsSotaWishServiceServer) PlayScene(context.Context, *PlaySceneRequest) (*PlaySceneResponse, error) {
	return nil, unimplemented("PlayScene")
}
func (UnimplementedMotionAsSotaWishServiceServer) StartIdling(context.Context, *StartIdlingRequest) (*StartIdlingResponse, error) {
	return nil, unimplemented("StartIdling")
}
func (UnimplementedMotionAsSotaWishServiceServer) StopIdling(context.Context, *StopIdlingRequest) (*StopIdlingResponse, error) {
	return nil, unimplemented("StopIdling")
}

var MotionAsSotaWishService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: MotionAsSotaWishServiceName,
	HandlerType: (*MotionAsSotaWishServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MotionAsSotaWishServiceName, "SayWithMotion", MotionAsSotaWishServiceServer.SayWithMotion),
		unary(MotionAsSotaWishServiceName, "PlayScene", MotionAsSotaWishServiceServer.PlayScene),
		unary(MotionAsSotaWishServiceName, "StartIdling", MotionAsSotaWishServiceServer.StartIdling),
		unary(MotionAsSotaWishServiceName, "StopIdling", MotionAsSotaWishServiceServer.StopIdling),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sotagrpc/v1/sotatalk.proto",
}

func RegisterMotionAsSotaWishServiceServer(s grpc.ServiceRegistrar, srv MotionAsSotaWishServiceServer) {
	s.RegisterService(&MotionAsSotaWishService_ServiceDesc, srv)
}

type MotionAsSotaWishServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMotionAsSotaWishServiceClient(cc grpc.ClientConnInterface) *MotionAsSotaWishServiceClient {
	return &MotionAsSotaWishServiceClient{cc: cc}
}

func (c *MotionAsSotaWishServiceClient) SayWithMotion(ctx context.Context, in *SayWithMotionRequest, opts ...grpc.CallOption) (*SayWithMotionResponse, error) {
	return invoke[SayWithMotionResponse](ctx, c.cc, MotionAsSotaWishServiceName, "SayWithMotion", in, opts)
}
func (c *MotionAsSotaWishServiceClient) PlayScene(ctx context.Context, in *PlaySceneRequest, opts ...grpc.CallOption) (*PlaySceneResponse, error) {
	return invoke[PlaySceneResponse](ctx, c.cc, MotionAsSotaWishServiceName, "PlayScene", in, opts)
}
func (c *MotionAsSotaWishServiceClient) StartIdling(ctx context.Context, in *StartIdlingRequest, opts ...grpc.CallOption) (*StartIdlingResponse, error) {
	return invoke[StartIdlingResponse](ctx, c.cc, MotionAsSotaWishServiceName, "StartIdling", in, opts)
}
func (c *MotionAsSotaWishServiceClient) StopIdling(ctx context.Context, in *StopIdlingRequest, opts ...grpc.CallOption) (*StopIdlingResponse, error) {
	return invoke[StopIdlingResponse](ctx, c.cc, MotionAsSotaWishServiceName, "StopIdling", in, opts)
}

// ---------------------------------------------------------------------------
// TextToSpeechService
// ---------------------------------------------------------------------------

// TextToSpeechServiceServer synthesizes speech into wave bytes.
type TextToSpeechServiceServer interface {
	GetTTSData(context.Context, *GetTTSDataRequest) (*GetTTSDataResponse, error)
}

type UnimplementedTextToSpeechServiceServer struct{}

func (UnimplementedTextToSpeechServiceServer) GetTTSData(context.Context, *GetTTSDataRequest) (*GetTTSDataResponse, error) {
	return nil, unimplemented("GetTTSData")
}

var TextToSpeechService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: TextToSpeechServiceName,
	HandlerType: (*TextToSpeechServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(TextToSpeechServiceName, "GetTTSData", TextToSpeechServiceServer.GetTTSData),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sotagrpc/v1/sotatalk.proto",
}

func RegisterTextToSpeechServiceServer(s grpc.ServiceRegistrar, srv TextToSpeechServiceServer) {
	s.RegisterService(&TextToSpeechService_ServiceDesc, srv)
}

type TextToSpeechServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewTextToSpeechServiceClient(cc grpc.ClientConnInterface) *TextToSpeechServiceClient {
	return &TextToSpeechServiceClient{cc: cc}
}

func (c *TextToSpeechServiceClient) GetTTSData(ctx context.Context, in *GetTTSDataRequest, opts ...grpc.CallOption) (*GetTTSDataResponse, error) {
	return invoke[GetTTSDataResponse](ctx, c.cc, TextToSpeechServiceName, "GetTTSData", in, opts)
}

// ---------------------------------------------------------------------------
// SpeechRecognitionService
// ---------------------------------------------------------------------------

// SpeechRecognitionServiceServer listens through the robot microphone.
type SpeechRecognitionServiceServer interface {
	Recognize(context.Context, *RecognizeRequest) (*RecognitionResult, error)
	RecognizeYesOrNo(context.Context, *RecognizeYesOrNoRequest) (*RecognizeYesOrNoResponse, error)
	RecognizeName(context.Context, *RecognizeNameRequest) (*RecognizeNameResponse, error)
	RecognizeNames(context.Context, *RecognizeNamesRequest) (*RecognizeNamesResponse, error)
	RecognizeGeneralResponse(context.Context, *RecognizeGeneralResponseRequest) (*RecognizeGeneralResponseResponse, error)
}

type UnimplementedSpeechRecognitionServiceServer struct{}

func (UnimplementedSpeechRecognitionServiceServer) Recognize(context.Context, *RecognizeRequest) (*RecognitionResult, error) {
	return nil, unimplemented("Recognize")
}
func (UnimplementedSpeechRecognitionServiceServer) RecognizeYesOrNo(context.Context, *RecognizeYesOrNoRequest) (*RecognizeYesOrNoResponse, error) {
	return nil, unimplemented("RecognizeYesOrNo")
}
func (UnimplementedSpeechRecognitionServiceServer) RecognizeName(context.Context, *RecognizeNameRequest) (*RecognizeNameResponse, error) {
	return nil, unimplemented("RecognizeName")
}
func (UnimplementedSpeechRecognitionServiceServer) RecognizeNames(context.Context, *RecognizeNamesRequest) (*RecognizeNamesResponse, error) {
	return nil, unimplemented("RecognizeNames")
}
func (UnimplementedSpeechRecognitionServiceServer) RecognizeGeneralResponse(context.Context, *RecognizeGeneralResponseRequest) (*RecognizeGeneralResponseResponse, error) {
	return nil, unimplemented("RecognizeGeneralResponse")
}

var SpeechRecognitionService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: SpeechRecognitionServiceName,
	HandlerType: (*SpeechRecognitionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(SpeechRecognitionServiceName, "Recognize", SpeechRecognitionServiceServer.Recognize),
		unary(SpeechRecognitionServiceName, "RecognizeYesOrNo", SpeechRecognitionServiceServer.RecognizeYesOrNo),
		unary(SpeechRecognitionServiceName, "RecognizeName", SpeechRecognitionServiceServer.RecognizeName),
		unary(SpeechRecognitionServiceName, "RecognizeNames", SpeechRecognitionServiceServer.RecognizeNames),
		unary(SpeechRecognitionServiceName, "RecognizeGeneralResponse", SpeechRecognitionServiceServer.RecognizeGeneralResponse),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sotagrpc/v1/sotatalk.proto",
}

func RegisterSpeechRecognitionServiceServer(s grpc.ServiceRegistrar, srv SpeechRecognitionServiceServer) {
	s.RegisterService(&SpeechRecognitionService_ServiceDesc, srv)
}

type SpeechRecognitionServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSpeechRecognitionServiceClient(cc grpc.ClientConnInterface) *SpeechRecognitionServiceClient {
	return &SpeechRecognitionServiceClient{cc: cc}
}

func (c *SpeechRecognitionServiceClient) Recognize(ctx context.Context, in *RecognizeRequest, opts ...grpc.CallOption) (*RecognitionResult, error) {
	return invoke[RecognitionResult](ctx, c.cc, SpeechRecognitionServiceName, "Recognize", in, opts)
}
func (c *SpeechRecognitionServiceClient) RecognizeYesOrNo(ctx context.Context, in *RecognizeYesOrNoRequest, opts ...grpc.CallOption) (*RecognizeYesOrNoResponse, error) {
	return invoke[RecognizeYesOrNoResponse](ctx, c.cc, SpeechRecognitionServiceName, "RecognizeYesOrNo", in, opts)
}
func (c *SpeechRecognitionServiceClient) RecognizeName(ctx context.Context, in *RecognizeNameRequest, opts ...grpc.CallOption) (*RecognizeNameResponse, error) {
	return invoke[RecognizeNameResponse](ctx, c.cc, SpeechRecognitionServiceName, "RecognizeName", in, opts)
}
func (c *SpeechRecognitionServiceClient) RecognizeNames(ctx context.Context, in *RecognizeNamesRequest, opts ...grpc.CallOption) (*RecognizeNamesResponse, error) {
	return invoke[RecognizeNamesResponse](ctx, c.cc, SpeechRecognitionServiceName, "RecognizeNames", in, opts)
}
func (c *SpeechRecognitionServiceClient) RecognizeGeneralResponse(ctx context.Context, in *RecognizeGeneralResponseRequest, opts ...grpc.CallOption) (*RecognizeGeneralResponseResponse, error) {
	return invoke[RecognizeGeneralResponseResponse](ctx, c.cc, SpeechRecognitionServiceName, "RecognizeGeneralResponse", in, opts)
}
