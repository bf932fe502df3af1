package router

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/adapter/repository/memory"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/adapter/storage/s3"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/handler"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/middleware"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/session"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeImages struct {
	mu      sync.Mutex
	uploads int
	deleted []string
}

func (f *fakeImages) Upload(_ context.Context, up domain.ImageUpload) (domain.Image, error) {
	if !s3.AllowedFormat(up.FileName) {
		return domain.Image{}, domain.ErrUnsupportedImage
	}
	if _, err := io.ReadAll(up.Data); err != nil {
		return domain.Image{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++
	key := "test/" + up.FileName
	return domain.Image{URL: "http://images.test/" + key, Filename: key}, nil
}

func (f *fakeImages) Delete(_ context.Context, filename string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, filename)
	return nil
}

func (f *fakeImages) uploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uploads
}

type testApp struct {
	server *httptest.Server
	store  *memory.Store
	images *fakeImages
}

func newTestApp(t *testing.T, loginPerMinute, burst int) *testApp {
	return newTestAppWithProxy(t, loginPerMinute, burst, false)
}

func newTestAppWithProxy(t *testing.T, loginPerMinute, burst int, trustProxy bool) *testApp {
	t.Helper()
	log := logger.NewNop()
	store := memory.NewStore()
	images := &fakeImages{}

	listings := usecase.NewListingUsecase(store.Listings(), store.Reviews(), store.Users(), store, images, log)
	reviews := usecase.NewReviewUsecase(store.Listings(), store.Reviews(), store, log)
	users := usecase.NewUserUsecase(store.Users(), log).WithHashCost(bcrypt.MinCost)

	h, err := handler.New(handler.Options{
		Listings:  listings,
		Reviews:   reviews,
		Users:     users,
		MaxUpload: 1 << 20,
	}, log)
	require.NoError(t, err)

	limiter := middleware.NewLimiterStore(loginPerMinute, burst, time.Minute)
	t.Cleanup(limiter.Stop)

	mux := New(Deps{
		Handler:  h,
		Sessions: session.NewManager(store.Sessions(), session.Options{Secret: "test-secret"}, log),
		Users:    users,
		Listings: listings,
		Reviews:  reviews,
		Limiter:  limiter,
		Logger:   log,

		TrustProxy: trustProxy,
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &testApp{server: srv, store: store, images: images}
}

// browser is a cookie-keeping client that does not follow redirects.
type browser struct {
	t      *testing.T
	app    *testApp
	client *http.Client
}

func (a *testApp) browser(t *testing.T) *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{t: t, app: a, client: &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}}
}

type response struct {
	status   int
	location string
	body     string
}

func (b *browser) do(method, path string, body io.Reader, contentType string) response {
	b.t.Helper()
	req, err := http.NewRequest(method, b.app.server.URL+path, body)
	require.NoError(b.t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return response{status: resp.StatusCode, location: resp.Header.Get("Location"), body: string(raw)}
}

func (b *browser) postFormFrom(path, forwardedFor string, values url.Values) response {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodPost, b.app.server.URL+path, strings.NewReader(values.Encode()))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	resp.Body.Close()
	return response{status: resp.StatusCode, location: resp.Header.Get("Location")}
}

func (b *browser) get(path string) response {
	return b.do(http.MethodGet, path, nil, "")
}

func (b *browser) postForm(path string, values url.Values) response {
	return b.do(http.MethodPost, path, strings.NewReader(values.Encode()), "application/x-www-form-urlencoded")
}

func (b *browser) postMultipart(path string, fields map[string]string, fileName string, file []byte) response {
	b.t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(b.t, w.WriteField(k, v))
	}
	if fileName != "" {
		part, err := w.CreateFormFile("listing[image]", fileName)
		require.NoError(b.t, err)
		_, err = part.Write(file)
		require.NoError(b.t, err)
	}
	require.NoError(b.t, w.Close())
	return b.do(http.MethodPost, path, &buf, w.FormDataContentType())
}

func (b *browser) signup(username string) response {
	return b.postForm("/signup", url.Values{
		"username": {username},
		"email":    {username + "@example.com"},
		"password": {"pass-" + username},
	})
}

func (b *browser) login(username, password string) response {
	return b.postForm("/login", url.Values{"username": {username}, "password": {password}})
}

func listingFields(title string) map[string]string {
	return map[string]string{
		"listing[title]":       title,
		"listing[description]": "A quiet place by the sea",
		"listing[price]":       "12500",
		"listing[location]":    "Goa",
	}
}

// createListing posts a listing and returns its id.
func (b *browser) createListing(title string) string {
	b.t.Helper()
	res := b.postMultipart("/listings", listingFields(title), "beach.jpg", []byte("jpegdata"))
	require.Equal(b.t, http.StatusFound, res.status, res.body)
	require.Equal(b.t, "/listings", res.location)

	all, err := b.app.store.Listings().List(context.Background())
	require.NoError(b.t, err)
	for _, l := range all {
		if l.Title == title {
			return l.ID
		}
	}
	b.t.Fatalf("listing %q not stored", title)
	return ""
}

func (a *testApp) listing(t *testing.T, id string) *domain.Listing {
	t.Helper()
	l, err := a.store.Listings().GetByID(context.Background(), id)
	require.NoError(t, err)
	return l
}

func TestSignupLogsInAndWelcomes(t *testing.T) {
	app := newTestApp(t, 100, 100)
	alice := app.browser(t)

	res := alice.signup("alice")
	assert.Equal(t, http.StatusFound, res.status)
	assert.Equal(t, "/listings", res.location)

	page := alice.get("/listings")
	assert.Equal(t, http.StatusOK, page.status)
	assert.Contains(t, page.body, "Welcome to Wanderlust!")
	assert.Contains(t, page.body, "alice")

	// flash is shown once
	assert.NotContains(t, alice.get("/listings").body, "Welcome to Wanderlust!")

	// authenticated pages are reachable
	assert.Equal(t, http.StatusOK, alice.get("/listings/new").status)
}

func TestSignupDuplicateUsername(t *testing.T) {
	app := newTestApp(t, 100, 100)
	app.browser(t).signup("alice")

	other := app.browser(t)
	res := other.signup("alice")
	assert.Equal(t, http.StatusFound, res.status)
	assert.Equal(t, "/signup", res.location)
	assert.Contains(t, other.get("/signup").body, "A user with the given username is already registered")
}

func TestSignupValidation(t *testing.T) {
	app := newTestApp(t, 100, 100)
	b := app.browser(t)

	res := b.postForm("/signup", url.Values{"username": {"bob"}, "email": {"not-an-email"}, "password": {"x"}})
	assert.Equal(t, "/signup", res.location)
	assert.Contains(t, b.get("/signup").body, "must be a valid email")
}

func TestLoginWrongPasswordStaysAnonymous(t *testing.T) {
	app := newTestApp(t, 100, 100)
	app.browser(t).signup("alice")

	b := app.browser(t)
	res := b.login("alice", "wrong")
	assert.Equal(t, http.StatusFound, res.status)
	assert.Equal(t, "/login", res.location)
	assert.Contains(t, b.get("/login").body, "Password or username is incorrect")

	res = b.get("/listings/new")
	assert.Equal(t, http.StatusFound, res.status)
	assert.Equal(t, "/login", res.location)
}

func TestLoginReturnsToRequestedPage(t *testing.T) {
	app := newTestApp(t, 100, 100)
	app.browser(t).signup("alice")

	b := app.browser(t)
	res := b.get("/listings/new")
	require.Equal(t, "/login", res.location)
	assert.Contains(t, b.get("/login").body, "You must be logged in first!")

	res = b.login("alice", "pass-alice")
	assert.Equal(t, http.StatusFound, res.status)
	assert.Equal(t, "/listings/new", res.location)
	assert.Contains(t, b.get("/listings/new").body, "Welcome back to Wanderlust!")

	// the target is used once
	b.get("/logout")
	res = b.login("alice", "pass-alice")
	assert.Equal(t, "/listings", res.location)
}

func TestLogout(t *testing.T) {
	app := newTestApp(t, 100, 100)
	b := app.browser(t)

	res := b.get("/logout")
	assert.Equal(t, "/login", res.location)

	b.signup("alice")
	res = b.get("/logout")
	assert.Equal(t, "/listings", res.location)
	page := b.get("/listings")
	assert.Contains(t, page.body, "Logged out successfully!")
	assert.Equal(t, "/login", b.get("/listings/new").location)
}

func TestCreateListingRoundTrip(t *testing.T) {
	app := newTestApp(t, 100, 100)
	alice := app.browser(t)
	alice.signup("alice")

	id := alice.createListing("Beach Hut")
	assert.Contains(t, alice.get("/listings").body, "New listing created successfully!")

	stored := app.listing(t, id)
	assert.Equal(t, "Goa", stored.Location)
	assert.Equal(t, 12500.0, stored.Price)
	assert.Equal(t, "test/beach.jpg", stored.Image.Filename)
	assert.Empty(t, stored.ReviewIDs)

	page := alice.get("/listings/" + id)
	assert.Equal(t, http.StatusOK, page.status)
	assert.Contains(t, page.body, "Beach Hut")
	assert.Contains(t, page.body, "12,500")
	assert.Contains(t, page.body, "http://images.test/test/beach.jpg")
	assert.Contains(t, page.body, "Owned by <i>alice</i>")
}

func TestCreateListingWithoutImageFailsBeforeWrite(t *testing.T) {
	app := newTestApp(t, 100, 100)
	alice := app.browser(t)
	alice.signup("alice")

	res := alice.postMultipart("/listings", listingFields("No Picture"), "", nil)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Contains(t, res.body, "Image is required")

	all, err := app.store.Listings().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Zero(t, app.images.uploadCount())
}

func TestCreateListingRejectsUnsupportedImage(t *testing.T) {
	app := newTestApp(t, 100, 100)
	alice := app.browser(t)
	alice.signup("alice")

	res := alice.postMultipart("/listings", listingFields("Gif"), "anim.gif", []byte("GIF89a"))
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Zero(t, app.images.uploadCount())
}

func TestCreateListingValidation(t *testing.T) {
	app := newTestApp(t, 100, 100)
	alice := app.browser(t)
	alice.signup("alice")

	fields := listingFields("")
	fields["listing[price]"] = "cheap"
	res := alice.postMultipart("/listings", fields, "beach.jpg", []byte("x"))
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Contains(t, res.body, "listing.price&#34; must be a number")
	assert.Contains(t, res.body, "listing.title&#34; is required")
	assert.Zero(t, app.images.uploadCount())

	fields = listingFields("Negative")
	fields["listing[price]"] = "-5"
	res = alice.postMultipart("/listings", fields, "beach.jpg", []byte("x"))
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Contains(t, res.body, "must be greater than or equal to 0")
}

func TestCreateListingRequiresLogin(t *testing.T) {
	app := newTestApp(t, 100, 100)
	b := app.browser(t)

	res := b.postMultipart("/listings", listingFields("Sneaky"), "beach.jpg", []byte("x"))
	assert.Equal(t, http.StatusFound, res.status)
	assert.Equal(t, "/login", res.location)
	assert.Zero(t, app.images.uploadCount())

	// POST targets are not remembered
	app.browser(t).signup("alice")
	res = b.login("alice", "pass-alice")
	assert.Equal(t, "/listings", res.location)
}

func TestOwnerCanUpdateAndDelete(t *testing.T) {
	app := newTestApp(t, 100, 100)
	alice := app.browser(t)
	alice.signup("alice")
	id := alice.createListing("Beach Hut")

	assert.Equal(t, http.StatusOK, alice.get("/listings/"+id+"/edit").status)

	fields := listingFields("Beach Villa")
	fields["listing[price]"] = "20000"
	res := alice.postMultipart("/listings/"+id+"?_method=PUT", fields, "", nil)
	require.Equal(t, http.StatusFound, res.status, res.body)
	assert.Equal(t, "/listings/"+id, res.location)
	assert.Contains(t, alice.get(res.location).body, "Listing updated successfully!")

	stored := app.listing(t, id)
	assert.Equal(t, "Beach Villa", stored.Title)
	assert.Equal(t, 20000.0, stored.Price)
	assert.Equal(t, "test/beach.jpg", stored.Image.Filename)

	res = alice.postMultipart("/listings/"+id+"?_method=PUT", fields, "villa.png", []byte("png"))
	require.Equal(t, http.StatusFound, res.status)
	assert.Equal(t, "test/villa.png", app.listing(t, id).Image.Filename)

	res = alice.postForm("/listings/"+id+"?_method=DELETE", url.Values{})
	assert.Equal(t, "/listings", res.location)
	assert.Contains(t, alice.get("/listings").body, "Listing deleted successfully!")
	_, err := app.store.Listings().GetByID(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestNonOwnerCannotMutateListing(t *testing.T) {
	app := newTestApp(t, 100, 100)
	alice := app.browser(t)
	alice.signup("alice")
	id := alice.createListing("Beach Hut")
	before := app.listing(t, id)

	bob := app.browser(t)
	bob.signup("bob")

	res := bob.get("/listings/" + id + "/edit")
	assert.Equal(t, "/listings/"+id, res.location)
	assert.Contains(t, bob.get(res.location).body, "You are not the owner of this listing!")

	fields := listingFields("Hijacked")
	res = bob.postMultipart("/listings/"+id+"?_method=PUT", fields, "", nil)
	assert.Equal(t, http.StatusFound, res.status)
	assert.Equal(t, "/listings/"+id, res.location)

	res = bob.postForm("/listings/"+id, url.Values{"_method": {"DELETE"}})
	assert.Equal(t, "/listings/"+id, res.location)

	after := app.listing(t, id)
	assert.Equal(t, before.Title, after.Title)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestAnonymousLogoutIsNotALoginTarget(t *testing.T) {
	app := newTestApp(t, 100, 100)
	app.browser(t).signup("alice")

	b := app.browser(t)
	res := b.get("/logout")
	require.Equal(t, "/login", res.location)

	res = b.login("alice", "pass-alice")
	assert.Equal(t, http.StatusFound, res.status)
	assert.Equal(t, "/listings", res.location)
	assert.Contains(t, b.get("/listings/new").body, "Welcome back to Wanderlust!")
}

func TestReviewCannotBeDeletedThroughAnotherListing(t *testing.T) {
	app := newTestApp(t, 100, 100)
	alice := app.browser(t)
	alice.signup("alice")
	first := alice.createListing("Beach Hut")
	second := alice.createListing("Mountain Cabin")

	res := alice.postForm("/listings/"+first+"/reviews", url.Values{"review[comment]": {"Mine"}, "review[rating]": {"4"}})
	require.Equal(t, "/listings/"+first, res.location)
	reviewID := app.listing(t, first).ReviewIDs[0]
	alice.get(res.location)

	res = alice.postForm("/listings/"+second+"/reviews/"+reviewID+"?_method=DELETE", nil)
	assert.Equal(t, "/listings/"+second, res.location)
	assert.Contains(t, alice.get(res.location).body, "Review not found!")

	assert.Equal(t, []string{reviewID}, app.listing(t, first).ReviewIDs)
	_, err := app.store.Reviews().GetByID(context.Background(), reviewID)
	assert.NoError(t, err)
}

func TestMissingIDsNeverCrash(t *testing.T) {
	app := newTestApp(t, 100, 100)
	alice := app.browser(t)
	alice.signup("alice")

	for _, id := range []string{"not-an-id", "64b7f0c2a1b2c3d4e5f60718"} {
		res := alice.get("/listings/" + id)
		assert.Equal(t, http.StatusFound, res.status)
		assert.Equal(t, "/listings", res.location)
		assert.Contains(t, alice.get("/listings").body, "Listing not found!")

		res = alice.get("/listings/" + id + "/edit")
		assert.Equal(t, "/listings", res.location)
		alice.get("/listings")

		res = alice.postMultipart("/listings/"+id+"?_method=PUT", listingFields("x"), "", nil)
		assert.Equal(t, "/listings", res.location)
		alice.get("/listings")

		res = alice.postForm("/listings/"+id+"?_method=DELETE", nil)
		assert.Equal(t, "/listings", res.location)
		alice.get("/listings")

		res = alice.postForm("/listings/"+id+"/reviews", url.Values{"review[comment]": {"hi"}, "review[rating]": {"4"}})
		assert.Equal(t, "/listings", res.location)
		alice.get("/listings")

		res = alice.postForm("/listings/"+id+"/reviews/"+id+"?_method=DELETE", nil)
		assert.Equal(t, "/listings", res.location)
		assert.Contains(t, alice.get("/listings").body, "Listing not found!")
	}
}

func TestReviewLifecycle(t *testing.T) {
	app := newTestApp(t, 100, 100)
	alice := app.browser(t)
	alice.signup("alice")
	id := alice.createListing("Beach Hut")

	bob := app.browser(t)
	bob.signup("bob")
	res := bob.postForm("/listings/"+id+"/reviews", url.Values{"review[comment]": {"Lovely stay"}, "review[rating]": {"5"}})
	require.Equal(t, http.StatusFound, res.status, res.body)
	assert.Equal(t, "/listings/"+id, res.location)

	page := bob.get(res.location)
	assert.Contains(t, page.body, "New review created successfully!")
	assert.Contains(t, page.body, "Lovely stay")
	assert.Contains(t, page.body, "@bob")

	listing := app.listing(t, id)
	require.Len(t, listing.ReviewIDs, 1)
	reviewID := listing.ReviewIDs[0]

	// alice is not the author
	res = alice.postForm("/listings/"+id+"/reviews/"+reviewID+"?_method=DELETE", nil)
	assert.Equal(t, "/listings/"+id, res.location)
	assert.Contains(t, alice.get(res.location).body, "You are not the author of this review!")
	assert.Len(t, app.listing(t, id).ReviewIDs, 1)

	res = bob.postForm("/listings/"+id+"/reviews/"+reviewID+"?_method=DELETE", nil)
	assert.Equal(t, "/listings/"+id, res.location)
	assert.Contains(t, bob.get(res.location).body, "Review deleted successfully!")

	assert.Empty(t, app.listing(t, id).ReviewIDs)
	_, err := app.store.Reviews().GetByID(context.Background(), reviewID)
	assert.ErrorIs(t, err, domain.ErrReviewNotFound)
}

func TestReviewValidation(t *testing.T) {
	app := newTestApp(t, 100, 100)
	alice := app.browser(t)
	alice.signup("alice")
	id := alice.createListing("Beach Hut")

	res := alice.postForm("/listings/"+id+"/reviews", url.Values{"review[comment]": {""}, "review[rating]": {"9"}})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Contains(t, res.body, "review.comment&#34; is required")
	assert.Contains(t, res.body, "review.rating&#34; must be less than or equal to 5")
	assert.Empty(t, app.listing(t, id).ReviewIDs)

	anon := app.browser(t)
	res = anon.postForm("/listings/"+id+"/reviews", url.Values{"review[comment]": {"hi"}, "review[rating]": {"3"}})
	assert.Equal(t, "/login", res.location)
	assert.Empty(t, app.listing(t, id).ReviewIDs)
}

func TestDeleteListingRemovesReviews(t *testing.T) {
	app := newTestApp(t, 100, 100)
	alice := app.browser(t)
	alice.signup("alice")
	id := alice.createListing("Beach Hut")

	bob := app.browser(t)
	bob.signup("bob")
	bob.postForm("/listings/"+id+"/reviews", url.Values{"review[comment]": {"Nice"}, "review[rating]": {"4"}})
	reviewID := app.listing(t, id).ReviewIDs[0]

	res := alice.postForm("/listings/"+id+"?_method=DELETE", nil)
	assert.Equal(t, "/listings", res.location)

	_, err := app.store.Reviews().GetByID(context.Background(), reviewID)
	assert.ErrorIs(t, err, domain.ErrReviewNotFound)
}

func TestUnknownRoutesRender404(t *testing.T) {
	app := newTestApp(t, 100, 100)
	b := app.browser(t)

	res := b.get("/nowhere")
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Contains(t, res.body, "Page Not Found!")

	res = b.do(http.MethodPatch, "/listings", nil, "")
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Contains(t, res.body, "Page Not Found!")
}

func TestRootAndStatic(t *testing.T) {
	app := newTestApp(t, 100, 100)
	b := app.browser(t)

	assert.Equal(t, "/listings", b.get("/").location)

	css := b.get("/static/style.css")
	assert.Equal(t, http.StatusOK, css.status)
	assert.Contains(t, css.body, ".navbar")

	assert.Equal(t, http.StatusOK, b.get("/healthz").status)
}

func TestLoginIsRateLimited(t *testing.T) {
	app := newTestApp(t, 1, 2)
	b := app.browser(t)

	assert.Equal(t, http.StatusFound, b.login("ghost", "x").status)
	assert.Equal(t, http.StatusFound, b.login("ghost", "x").status)
	res := b.login("ghost", "x")
	assert.Equal(t, http.StatusTooManyRequests, res.status)

	// browsing is not limited
	assert.Equal(t, http.StatusOK, b.get("/listings").status)
}

func TestRateLimitIgnoresForwardedForByDefault(t *testing.T) {
	app := newTestApp(t, 1, 2)
	b := app.browser(t)
	creds := url.Values{"username": {"ghost"}, "password": {"x"}}

	assert.Equal(t, http.StatusFound, b.postFormFrom("/login", "10.0.0.1", creds).status)
	assert.Equal(t, http.StatusFound, b.postFormFrom("/login", "10.0.0.2", creds).status)
	assert.Equal(t, http.StatusTooManyRequests, b.postFormFrom("/login", "10.0.0.3", creds).status)
}

func TestRateLimitUsesForwardedForBehindTrustedProxy(t *testing.T) {
	app := newTestAppWithProxy(t, 1, 1, true)
	b := app.browser(t)
	creds := url.Values{"username": {"ghost"}, "password": {"x"}}

	assert.Equal(t, http.StatusFound, b.postFormFrom("/login", "10.0.0.1", creds).status)
	assert.Equal(t, http.StatusTooManyRequests, b.postFormFrom("/login", "10.0.0.1", creds).status)
	assert.Equal(t, http.StatusFound, b.postFormFrom("/login", "10.0.0.2", creds).status)
}
