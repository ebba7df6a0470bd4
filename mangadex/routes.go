package mangadex

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/samber/lo"
)

// Operation names one remote endpoint.
type Operation string

const (
	OpLogin      Operation = "auth.login"
	OpLogout     Operation = "auth.logout"
	OpRefresh    Operation = "auth.refresh"
	OpCheckToken Operation = "auth.check"

	OpPing Operation = "infrastructure.ping"

	OpListManga                Operation = "manga.list"
	OpCreateManga              Operation = "manga.create"
	OpGetManga                 Operation = "manga.get"
	OpUpdateManga              Operation = "manga.update"
	OpDeleteManga              Operation = "manga.delete"
	OpFollowManga              Operation = "manga.follow"
	OpUnfollowManga            Operation = "manga.unfollow"
	OpMangaReadMarkers         Operation = "manga.read"
	OpBatchMangaReadMarkers    Operation = "manga.read.batch"
	OpRandomManga              Operation = "manga.random"
	OpListTags                 Operation = "manga.tags"
	OpMangaReadingStatuses     Operation = "manga.status.list"
	OpMangaReadingStatus       Operation = "manga.status.get"
	OpUpdateMangaReadingStatus Operation = "manga.status.update"
	OpMangaFeed                Operation = "manga.feed"
	OpAddMangaToList           Operation = "manga.list.add"
	OpRemoveMangaFromList      Operation = "manga.list.remove"

	OpListChapters      Operation = "chapter.list"
	OpGetChapter        Operation = "chapter.get"
	OpUpdateChapter     Operation = "chapter.update"
	OpDeleteChapter     Operation = "chapter.delete"
	OpMarkChapterRead   Operation = "chapter.read"
	OpMarkChapterUnread Operation = "chapter.unread"

	OpListCovers  Operation = "cover.list"
	OpGetCover    Operation = "cover.get"
	OpUpdateCover Operation = "cover.update"
	OpDeleteCover Operation = "cover.delete"

	OpListAuthors  Operation = "author.list"
	OpCreateAuthor Operation = "author.create"
	OpGetAuthor    Operation = "author.get"
	OpUpdateAuthor Operation = "author.update"
	OpDeleteAuthor Operation = "author.delete"

	OpListGroups     Operation = "group.list"
	OpCreateGroup    Operation = "group.create"
	OpGetGroup       Operation = "group.get"
	OpUpdateGroup    Operation = "group.update"
	OpDeleteGroup    Operation = "group.delete"
	OpFollowGroup    Operation = "group.follow"
	OpUnfollowGroup  Operation = "group.unfollow"
	OpFollowedGroups Operation = "group.followed"

	OpCreateList Operation = "list.create"
	OpGetList    Operation = "list.get"
	OpUpdateList Operation = "list.update"
	OpDeleteList Operation = "list.delete"
	OpMyLists    Operation = "list.mine"
	OpUserLists  Operation = "list.user"
	OpListFeed   Operation = "list.feed"

	OpListUsers           Operation = "user.list"
	OpGetUser             Operation = "user.get"
	OpDeleteUser          Operation = "user.delete"
	OpApproveUserDeletion Operation = "user.delete.approve"
	OpUpdatePassword      Operation = "user.password"
	OpUpdateEmail         Operation = "user.email"
	OpMe                  Operation = "user.me"
	OpFollowedUsers       Operation = "user.follows.user"
	OpFollowedManga       Operation = "user.follows.manga"
	OpFollowedMangaFeed   Operation = "user.follows.manga.feed"

	OpCreateAccount    Operation = "account.create"
	OpActivateAccount  Operation = "account.activate"
	OpResendActivation Operation = "account.activate.resend"
	OpRecoverAccount   Operation = "account.recover"
	OpCompleteRecovery Operation = "account.recover.complete"

	OpLegacyMapping Operation = "legacy.mapping"
	OpAtHomeServer  Operation = "athome.server"
	OpReportReasons Operation = "report.reasons"
	OpCreateReport  Operation = "report.create"
	OpSolveCaptcha  Operation = "captcha.solve"
)

// Route is the static description of an endpoint. Path placeholders such as
// {id} are substituted in order by the parameters of an Endpoint.
type Route struct {
	Method string
	Path   string
	// Auth marks routes that fail locally when no session token is stored.
	Auth bool
}

func get(path string) Route    { return Route{Method: http.MethodGet, Path: path} }
func post(path string) Route   { return Route{Method: http.MethodPost, Path: path} }
func put(path string) Route    { return Route{Method: http.MethodPut, Path: path} }
func remove(path string) Route { return Route{Method: http.MethodDelete, Path: path} }

func (r Route) authenticated() Route {
	r.Auth = true
	return r
}

// Routes is the endpoint catalog.
var Routes = map[Operation]Route{
	OpLogin:      post("/auth/login"),
	OpLogout:     post("/auth/logout").authenticated(),
	OpRefresh:    post("/auth/refresh"),
	OpCheckToken: get("/auth/check").authenticated(),

	OpPing: get("/ping"),

	OpListManga:                get("/manga"),
	OpCreateManga:              post("/manga").authenticated(),
	OpGetManga:                 get("/manga/{id}"),
	OpUpdateManga:              put("/manga/{id}").authenticated(),
	OpDeleteManga:              remove("/manga/{id}").authenticated(),
	OpFollowManga:              post("/manga/{id}/follow").authenticated(),
	OpUnfollowManga:            remove("/manga/{id}/follow").authenticated(),
	OpMangaReadMarkers:         get("/manga/{id}/read").authenticated(),
	OpBatchMangaReadMarkers:    get("/manga/read").authenticated(),
	OpRandomManga:              get("/manga/random"),
	OpListTags:                 get("/manga/tag"),
	OpMangaReadingStatuses:     get("/manga/status").authenticated(),
	OpMangaReadingStatus:       get("/manga/{id}/status").authenticated(),
	OpUpdateMangaReadingStatus: post("/manga/{id}/status").authenticated(),
	OpMangaFeed:                get("/manga/{id}/feed"),
	OpAddMangaToList:           post("/manga/{id}/list/{listId}").authenticated(),
	OpRemoveMangaFromList:      remove("/manga/{id}/list/{listId}").authenticated(),

	OpListChapters:      get("/chapter"),
	OpGetChapter:        get("/chapter/{id}"),
	OpUpdateChapter:     put("/chapter/{id}").authenticated(),
	OpDeleteChapter:     remove("/chapter/{id}").authenticated(),
	OpMarkChapterRead:   post("/chapter/{id}/read").authenticated(),
	OpMarkChapterUnread: remove("/chapter/{id}/read").authenticated(),

	OpListCovers:  get("/cover"),
	OpGetCover:    get("/cover/{id}"),
	OpUpdateCover: put("/cover/{id}").authenticated(),
	OpDeleteCover: remove("/cover/{id}").authenticated(),

	OpListAuthors:  get("/author"),
	OpCreateAuthor: post("/author").authenticated(),
	OpGetAuthor:    get("/author/{id}"),
	OpUpdateAuthor: put("/author/{id}").authenticated(),
	OpDeleteAuthor: remove("/author/{id}").authenticated(),

	OpListGroups:     get("/group"),
	OpCreateGroup:    post("/group").authenticated(),
	OpGetGroup:       get("/group/{id}"),
	OpUpdateGroup:    put("/group/{id}").authenticated(),
	OpDeleteGroup:    remove("/group/{id}").authenticated(),
	OpFollowGroup:    post("/group/{id}/follow").authenticated(),
	OpUnfollowGroup:  remove("/group/{id}/follow").authenticated(),
	OpFollowedGroups: get("/user/follows/group").authenticated(),

	OpCreateList: post("/list").authenticated(),
	OpGetList:    get("/list/{id}"),
	OpUpdateList: put("/list/{id}").authenticated(),
	OpDeleteList: remove("/list/{id}").authenticated(),
	OpMyLists:    get("/user/list").authenticated(),
	OpUserLists:  get("/user/{id}/list").authenticated(),
	OpListFeed:   get("/list/{id}/feed"),

	OpListUsers:           get("/user").authenticated(),
	OpGetUser:             get("/user/{id}"),
	OpDeleteUser:          remove("/user/{id}").authenticated(),
	OpApproveUserDeletion: post("/user/delete/{code}").authenticated(),
	OpUpdatePassword:      post("/user/password").authenticated(),
	OpUpdateEmail:         post("/user/email").authenticated(),
	OpMe:                  get("/user/me").authenticated(),
	OpFollowedUsers:       get("/user/follows/user").authenticated(),
	OpFollowedManga:       get("/user/follows/manga").authenticated(),
	OpFollowedMangaFeed:   get("/user/follows/manga/feed").authenticated(),

	OpCreateAccount:    post("/account/create"),
	OpActivateAccount:  get("/account/activate/{code}"),
	OpResendActivation: post("/account/activate/resend"),
	OpRecoverAccount:   post("/account/recover"),
	OpCompleteRecovery: post("/account/recover/{code}"),

	OpLegacyMapping: post("/legacy/mapping"),
	OpAtHomeServer:  get("/at-home/server/{chapterId}"),
	OpReportReasons: get("/report/reasons/{category}"),
	OpCreateReport:  post("/report").authenticated(),
	OpSolveCaptcha:  post("/captcha/solve"),
}

// Endpoint is one call of a Route: resolved parameters plus at most one payload.
type Endpoint struct {
	Route  Route
	Params []string
	// Query is encoded with go-querystring struct tags.
	Query any
	// Body is encoded as JSON.
	Body any
}

// Endpoint returns the catalog entry for op bound to params.
// Parameters are formatted with fmt, so uuid.UUID values print canonically.
func (op Operation) Endpoint(params ...any) Endpoint {
	route, ok := Routes[op]
	if !ok {
		route = Route{Path: string(op)}
	}
	return route.With(params...)
}

func (r Route) With(params ...any) Endpoint {
	return Endpoint{
		Route: r,
		Params: lo.Map(params, func(param any, _ int) string {
			return fmt.Sprint(param)
		}),
	}
}

func (e Endpoint) WithQuery(query any) Endpoint {
	e.Query = query
	return e
}

func (e Endpoint) WithBody(body any) Endpoint {
	e.Body = body
	return e
}

// Placeholders returns the names of the path parameters in order.
func (r Route) Placeholders() []string {
	var names []string
	rest := r.Path
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			return names
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return names
		}
		names = append(names, rest[open+1:open+end])
		rest = rest[open+end+1:]
	}
}

func (r Route) expand(params []string) (string, error) {
	if r.Method == "" {
		return "", fmt.Errorf("unknown route %q", r.Path)
	}

	var (
		b    strings.Builder
		rest = r.Path
		i    int
	)

	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}

		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("route %s: unterminated placeholder", r.Path)
		}

		if i >= len(params) {
			return "", fmt.Errorf("route %s: missing parameter %s", r.Path, rest[open:open+end+1])
		}

		b.WriteString(rest[:open])
		b.WriteString(params[i])
		i++
		rest = rest[open+end+1:]
	}

	if i != len(params) {
		return "", fmt.Errorf("route %s: expected %d parameters, got %d", r.Path, i, len(params))
	}

	b.WriteString(rest)
	return b.String(), nil
}
