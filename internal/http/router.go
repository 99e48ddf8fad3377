package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Rohanpawar9921/Swasthya/internal/domain"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）。
// 守卫链在注册点显式拼装，认证门永远先于角色门。
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func methodOnly(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, req)
	}
}

// RegisterRootRoute 服务存活探针
func (r *Router) RegisterRootRoute() {
	r.Handle("/", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, Ok("Swasthya API Server Running", nil))
	})
}

// RegisterAuthRoutes 注册认证路由（公开）
func (r *Router) RegisterAuthRoutes(h *AuthHandler) {
	r.Handle("/api/auth/signup", methodOnly(http.MethodPost, h.Signup))
	r.Handle("/api/auth/login", methodOnly(http.MethodPost, h.Login))
	r.Handle("/api/auth/me", methodOnly(http.MethodGet, h.Me))
}

// RegisterHealthInputRoutes 注册健康数据路由。
// 所有路由都在认证门之后；submit 限 user/hospital，all 与 export 限 government。
func (r *Router) RegisterHealthInputRoutes(h *HealthInputHandler, auth *Authenticator) {
	r.Handle("/api/health-input/submit", methodOnly(http.MethodPost,
		Chain(h.Submit, auth.Authenticate, RequireRoles(domain.RoleUser, domain.RoleHospital))))

	r.Handle("/api/health-input/my-submissions", methodOnly(http.MethodGet,
		Chain(h.MySubmissions, auth.Authenticate)))

	r.Handle("/api/health-input/all", methodOnly(http.MethodGet,
		Chain(h.All, auth.Authenticate, RequireRoles(domain.RoleGovernment))))

	r.Handle("/api/health-input/stats", methodOnly(http.MethodGet,
		Chain(h.Stats, auth.Authenticate)))

	r.Handle("/api/health-input/export", methodOnly(http.MethodGet,
		Chain(h.Export, auth.Authenticate, RequireRoles(domain.RoleGovernment))))
}

// RegisterSensorRoutes 注册传感器数据路由（公开读写）
func (r *Router) RegisterSensorRoutes(h *SensorHandler) {
	r.Handle("/api/sensor-data", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.List(w, req)
		case http.MethodPost:
			h.Ingest(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	r.Handle("/api/sensor-data/latest", methodOnly(http.MethodGet, h.Latest))
	r.Handle("/api/sensor-data/stats", methodOnly(http.MethodGet, h.Stats))

	r.Handle("/api/sensor-data/location/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if !strings.HasPrefix(req.URL.Path, "/api/sensor-data/location/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.ByArea(w, req)
	})
}
