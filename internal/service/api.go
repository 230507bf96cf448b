package service

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
	"permission-wizard/internal/catalog"
	"permission-wizard/internal/classifier"
	"permission-wizard/internal/generator"
	"permission-wizard/internal/model"
)

const serviceName = "permissionwizard.ConfigService"

// Messages are exchanged as JSON with content subtype "json".
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return "json" }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type ParseStatus string

const (
	ParseStatusOK           ParseStatus = "OK"
	ParseStatusUnrecognized ParseStatus = "UNRECOGNIZED"
	ParseStatusNoRanks      ParseStatus = "NO_RANKS"
)

type ParseConfigRequest struct {
	// Filename is optional. When set, only .yml, .yaml and .json are accepted.
	Filename string `json:"filename,omitempty"`
	Content  string `json:"content"`
}

type ParseConfigResponse struct {
	Status          ParseStatus        `json:"status"`
	Message         string             `json:"message,omitempty"`
	PluginType      model.Dialect      `json:"pluginType,omitempty"`
	Ranks           []model.Rank       `json:"ranks"`
	ParsedRanks     []model.ParsedRank `json:"parsedRanks"`
	DetectedPlugins []string           `json:"detectedPlugins"`
}

type GenerateConfigRequest struct {
	Format  model.Format  `json:"format"`
	Session model.Session `json:"session"`
}

type GenerateConfigResponse struct {
	Output *generator.Output `json:"output"`
}

type ClassifyRankRequest struct {
	Input classifier.Input `json:"input"`
	// DebounceKey groups requests for the same rank. Keyed requests wait for
	// a quiet period and are aborted when superseded.
	DebounceKey string `json:"debounceKey,omitempty"`
}

type ClassifyRankResponse struct {
	Result classifier.Result `json:"result"`
}

type LookupPluginPermissionsRequest struct {
	PluginName string `json:"pluginName"`
}

type LookupPluginPermissionsResponse struct {
	Result classifier.LookupResult `json:"result"`
}

type ListPluginsRequest struct{}

type ListPluginsResponse struct {
	Plugins []model.Plugin `json:"plugins"`
}

type ListServerTypesRequest struct{}

type ListServerTypesResponse struct {
	ServerTypes []model.ServerType `json:"serverTypes"`
	RankLevels  []model.RankLevel  `json:"rankLevels"`
}

type GetTemplateRequest struct {
	ServerType model.ServerType `json:"serverType"`
}

type GetTemplateResponse struct {
	Template catalog.Template `json:"template"`
	Session  model.Session    `json:"session"`
}

type CreateCustomPluginRequest struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Category    *string                `json:"category,omitempty"`
	Permissions []model.PermissionNode `json:"permissions"`
}

type CreateCustomPluginResponse struct {
	Plugin model.Plugin `json:"plugin"`
}

// UpdateCustomPluginRequest replaces the given fields of a custom plugin. Nil
// fields are left unchanged.
type UpdateCustomPluginRequest struct {
	PluginId    string                  `json:"pluginId"`
	Name        *string                 `json:"name,omitempty"`
	Description *string                 `json:"description,omitempty"`
	Category    *string                 `json:"category,omitempty"`
	Permissions *[]model.PermissionNode `json:"permissions,omitempty"`
}

type UpdateCustomPluginResponse struct {
	Plugin model.Plugin `json:"plugin"`
}

type DeleteCustomPluginRequest struct {
	PluginId string `json:"pluginId"`
}

type DeleteCustomPluginResponse struct{}

type ConfigServiceServer interface {
	ParseConfig(ctx context.Context, req *ParseConfigRequest) (*ParseConfigResponse, error)
	GenerateConfig(ctx context.Context, req *GenerateConfigRequest) (*GenerateConfigResponse, error)
	ClassifyRank(ctx context.Context, req *ClassifyRankRequest) (*ClassifyRankResponse, error)
	LookupPluginPermissions(ctx context.Context, req *LookupPluginPermissionsRequest) (*LookupPluginPermissionsResponse, error)
	ListPlugins(ctx context.Context, req *ListPluginsRequest) (*ListPluginsResponse, error)
	ListServerTypes(ctx context.Context, req *ListServerTypesRequest) (*ListServerTypesResponse, error)
	GetTemplate(ctx context.Context, req *GetTemplateRequest) (*GetTemplateResponse, error)
	CreateCustomPlugin(ctx context.Context, req *CreateCustomPluginRequest) (*CreateCustomPluginResponse, error)
	UpdateCustomPlugin(ctx context.Context, req *UpdateCustomPluginRequest) (*UpdateCustomPluginResponse, error)
	DeleteCustomPlugin(ctx context.Context, req *DeleteCustomPluginRequest) (*DeleteCustomPluginResponse, error)
}

func unaryHandler[Req any, Resp any](method string, call func(ConfigServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ConfigServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + serviceName + "/" + method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ConfigServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var configServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ConfigServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ParseConfig", Handler: unaryHandler("ParseConfig", ConfigServiceServer.ParseConfig)},
		{MethodName: "GenerateConfig", Handler: unaryHandler("GenerateConfig", ConfigServiceServer.GenerateConfig)},
		{MethodName: "ClassifyRank", Handler: unaryHandler("ClassifyRank", ConfigServiceServer.ClassifyRank)},
		{MethodName: "LookupPluginPermissions", Handler: unaryHandler("LookupPluginPermissions", ConfigServiceServer.LookupPluginPermissions)},
		{MethodName: "ListPlugins", Handler: unaryHandler("ListPlugins", ConfigServiceServer.ListPlugins)},
		{MethodName: "ListServerTypes", Handler: unaryHandler("ListServerTypes", ConfigServiceServer.ListServerTypes)},
		{MethodName: "GetTemplate", Handler: unaryHandler("GetTemplate", ConfigServiceServer.GetTemplate)},
		{MethodName: "CreateCustomPlugin", Handler: unaryHandler("CreateCustomPlugin", ConfigServiceServer.CreateCustomPlugin)},
		{MethodName: "UpdateCustomPlugin", Handler: unaryHandler("UpdateCustomPlugin", ConfigServiceServer.UpdateCustomPlugin)},
		{MethodName: "DeleteCustomPlugin", Handler: unaryHandler("DeleteCustomPlugin", ConfigServiceServer.DeleteCustomPlugin)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "permissionwizard/config_service",
}

func RegisterConfigServiceServer(s grpc.ServiceRegistrar, srv ConfigServiceServer) {
	s.RegisterService(&configServiceDesc, srv)
}

// ConfigServiceClient calls a ConfigService over an existing connection.
type ConfigServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewConfigServiceClient(cc grpc.ClientConnInterface) *ConfigServiceClient {
	return &ConfigServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(jsonCodec{}.Name())}, opts...)
	if err := cc.Invoke(ctx, "/"+serviceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ConfigServiceClient) ParseConfig(ctx context.Context, in *ParseConfigRequest, opts ...grpc.CallOption) (*ParseConfigResponse, error) {
	return invoke[ParseConfigResponse](ctx, c.cc, "ParseConfig", in, opts)
}

func (c *ConfigServiceClient) GenerateConfig(ctx context.Context, in *GenerateConfigRequest, opts ...grpc.CallOption) (*GenerateConfigResponse, error) {
	return invoke[GenerateConfigResponse](ctx, c.cc, "GenerateConfig", in, opts)
}

func (c *ConfigServiceClient) ClassifyRank(ctx context.Context, in *ClassifyRankRequest, opts ...grpc.CallOption) (*ClassifyRankResponse, error) {
	return invoke[ClassifyRankResponse](ctx, c.cc, "ClassifyRank", in, opts)
}

func (c *ConfigServiceClient) LookupPluginPermissions(ctx context.Context, in *LookupPluginPermissionsRequest, opts ...grpc.CallOption) (*LookupPluginPermissionsResponse, error) {
	return invoke[LookupPluginPermissionsResponse](ctx, c.cc, "LookupPluginPermissions", in, opts)
}

func (c *ConfigServiceClient) ListPlugins(ctx context.Context, in *ListPluginsRequest, opts ...grpc.CallOption) (*ListPluginsResponse, error) {
	return invoke[ListPluginsResponse](ctx, c.cc, "ListPlugins", in, opts)
}

func (c *ConfigServiceClient) ListServerTypes(ctx context.Context, in *ListServerTypesRequest, opts ...grpc.CallOption) (*ListServerTypesResponse, error) {
	return invoke[ListServerTypesResponse](ctx, c.cc, "ListServerTypes", in, opts)
}

func (c *ConfigServiceClient) GetTemplate(ctx context.Context, in *GetTemplateRequest, opts ...grpc.CallOption) (*GetTemplateResponse, error) {
	return invoke[GetTemplateResponse](ctx, c.cc, "GetTemplate", in, opts)
}

func (c *ConfigServiceClient) CreateCustomPlugin(ctx context.Context, in *CreateCustomPluginRequest, opts ...grpc.CallOption) (*CreateCustomPluginResponse, error) {
	return invoke[CreateCustomPluginResponse](ctx, c.cc, "CreateCustomPlugin", in, opts)
}

func (c *ConfigServiceClient) UpdateCustomPlugin(ctx context.Context, in *UpdateCustomPluginRequest, opts ...grpc.CallOption) (*UpdateCustomPluginResponse, error) {
	return invoke[UpdateCustomPluginResponse](ctx, c.cc, "UpdateCustomPlugin", in, opts)
}

func (c *ConfigServiceClient) DeleteCustomPlugin(ctx context.Context, in *DeleteCustomPluginRequest, opts ...grpc.CallOption) (*DeleteCustomPluginResponse, error) {
	return invoke[DeleteCustomPluginResponse](ctx, c.cc, "DeleteCustomPlugin", in, opts)
}
