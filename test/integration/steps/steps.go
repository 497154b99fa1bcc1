//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budget-tracker/backend/config"
	"github.com/budget-tracker/backend/internal/infra/dependency"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
	"github.com/budget-tracker/backend/test/integration/mock"
)

const (
	testJWTSecret   = "test-jwt-secret-key-for-testing-purposes"
	testPassword    = "DefaultPass123!"
	resendEmailPath = "/emails"
)

// tables lists every persisted table in creation order.
var tables = []string{"users", "refresh_tokens", "categories", "transactions", "budgets", "email_queue"}

var (
	suiteInit sync.Once
	testDB    *mock.Db
	timeMock  *mock.Time
	apiMock   *mock.ApiMock
	injector  *dependency.Injector
	server    *httptest.Server
)

type testContext struct {
	uri          string
	headers      map[string]string
	client       *http.Client
	response     *response
	db           *mock.Db
	accessToken  string
	refreshToken string
	tokens       map[string]string
	ids          map[string]uuid.UUID
}

type response struct {
	status  int
	headers http.Header
	raw     []byte
	body    any
}

// InitializeTestSuite builds the application once, wired to sqlite, miniredis,
// a controllable clock and a fake email provider.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		suiteInit.Do(startServer)
	})

	ctx.AfterSuite(func() {
		if server != nil {
			server.Close()
		}
		if apiMock != nil {
			apiMock.Close()
		}
	})
}

func startServer() {
	gin.SetMode(gin.TestMode)

	testDB = mock.NewDb(tables, map[string]any{
		"users":          &model.UserModel{},
		"refresh_tokens": &model.RefreshTokenModel{},
		"categories":     &model.CategoryModel{},
		"transactions":   &model.TransactionModel{},
		"budgets":        &model.BudgetModel{},
		"email_queue":    &model.EmailQueueModel{},
	})
	timeMock = mock.NewTime()
	apiMock = mock.NewApiServer()
	apiMock.Start()

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = testJWTSecret
	cfg.RateLimit.LoginAttempts = 5
	cfg.RateLimit.LoginWindow = time.Minute
	cfg.Email.ResendAPIKey = "re_test_key"
	cfg.Email.ResendBaseURL = apiMock.GetUrl()

	if err := dto.RegisterValidators(); err != nil {
		panic(err)
	}

	var err error
	injector, err = dependency.NewInjector(cfg, testDB.DbConn, func() bool { return true }, dependency.Options{
		Redis: mock.NewRedis(),
		Now:   timeMock.Now,
	})
	if err != nil {
		panic(err)
	}

	server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	suiteInit.Do(startServer)

	test := &testContext{
		uri:    server.URL,
		client: &http.Client{Timeout: 10 * time.Second},
		db:     testDB,
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)

	// Auth steps
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)

	// Data setup steps
	ctx.Given(`^the following transactions exist:$`, test.theFollowingTransactionsExist)
	ctx.Given(`^a budget of "([^"]*)" exists for category "([^"]*)"$`, test.aBudgetExistsForCategory)
	ctx.Given(`^a budget of "([^"]*)" with alerts exists for category "([^"]*)"$`, test.aBudgetWithAlertsExistsForCategory)
	ctx.Given(`^a category exists with name "([^"]*)"$`, test.aCategoryExistsWithName)
	ctx.Given(`^the email provider responds with status (\d+)$`, test.theEmailProviderRespondsWithStatus)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^the email worker runs$`, test.theEmailWorkerRuns)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response body should contain "([^"]*)"$`, test.theResponseBodyShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response header "([^"]*)" should contain "([^"]*)"$`, test.theResponseHeaderShouldContain)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// Email provider assertion steps
	ctx.Then(`^the email provider should have received (\d+) requests?$`, test.theEmailProviderShouldHaveReceivedRequests)
	ctx.Then(`^the email provider request (\d+) field "([^"]*)" should contain "([^"]*)"$`, test.theEmailProviderRequestFieldShouldContain)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.tokens = make(map[string]string)
	t.ids = make(map[string]uuid.UUID)

	timeMock.Reset()
	apiMock.Reset()
	apiMock.SetResponse(-1, http.MethodPost, resendEmailPath, http.StatusOK, map[string]any{"id": "email-test-id"})

	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	return t.db.ClearDB()
}

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.uri + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) theCurrentTimeIs(value string) error {
	current, err := time.ParseInLocation("2006-01-02T15:04:05", value, time.Local)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	timeMock.SetCurrentTime(current)
	return nil
}

// iAmLoggedInAs registers the user on first use and switches the session to it.
func (t *testContext) iAmLoggedInAs(email string) error {
	if token, ok := t.tokens[email]; ok {
		t.accessToken = token
		return nil
	}

	t.accessToken = ""
	payload := fmt.Sprintf(`{"email": %q, "name": "Test User", "password": %q}`, email, testPassword)
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/register", []byte(payload)); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("failed to register %s: %d %s", email, t.response.status, t.response.raw)
	}

	token, _ := getFieldValue(t.response.body, "accessToken").(string)
	refresh, _ := getFieldValue(t.response.body, "refreshToken").(string)
	if token == "" {
		return fmt.Errorf("register response has no access token: %s", t.response.raw)
	}

	t.tokens[email] = token
	t.accessToken = token
	t.refreshToken = refresh
	t.response = nil
	return nil
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	current := t.accessToken
	t.accessToken = ""
	defer func() { t.accessToken = current }()

	payload := fmt.Sprintf(`{"email": %q, "name": "Test User", "password": %q}`, email, password)
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/register", []byte(payload)); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("failed to create user %s: %d %s", email, t.response.status, t.response.raw)
	}
	t.response = nil
	return nil
}

func (t *testContext) theFollowingTransactionsExist(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return errors.New("transactions table needs a header and at least one row")
	}

	header := table.Rows[0].Cells
	for _, row := range table.Rows[1:] {
		fields := make(map[string]any, len(header))
		for i, cell := range row.Cells {
			name := header[i].Value
			if name == "amount" {
				fields[name] = json.Number(cell.Value)
			} else {
				fields[name] = cell.Value
			}
		}

		payload, err := json.Marshal(fields)
		if err != nil {
			return err
		}
		if err := t.executeRequest(http.MethodPost, "/api/v1/transactions", payload); err != nil {
			return err
		}
		if t.response.status != http.StatusCreated {
			return fmt.Errorf("failed to create transaction: %d %s", t.response.status, t.response.raw)
		}
	}

	t.response = nil
	return nil
}

func (t *testContext) aBudgetExistsForCategory(amount, category string) error {
	return t.createBudget(amount, category, false)
}

func (t *testContext) aBudgetWithAlertsExistsForCategory(amount, category string) error {
	return t.createBudget(amount, category, true)
}

func (t *testContext) createBudget(amount, category string, alerts bool) error {
	payload := fmt.Sprintf(`{"category": %q, "amount": %s, "alertOnExceed": %t}`, category, amount, alerts)
	if err := t.executeRequest(http.MethodPost, "/api/v1/budgets", []byte(payload)); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("failed to create budget: %d %s", t.response.status, t.response.raw)
	}
	t.response = nil
	return nil
}

func (t *testContext) aCategoryExistsWithName(name string) error {
	payload := fmt.Sprintf(`{"name": %q}`, name)
	if err := t.executeRequest(http.MethodPost, "/api/v1/categories", []byte(payload)); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("failed to create category: %d %s", t.response.status, t.response.raw)
	}
	t.response = nil
	return nil
}

func (t *testContext) theEmailProviderRespondsWithStatus(status int) error {
	apiMock.SetResponse(-1, http.MethodPost, resendEmailPath, status, map[string]any{
		"statusCode": status,
		"name":       "application_error",
		"message":    "provider unavailable",
	})
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = t.replacePlaceholders(value)
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) theEmailWorkerRuns() error {
	injector.EmailWorker.ProcessNow(context.Background())
	return nil
}

// replacePlaceholders substitutes {{access_token}}, {{refresh_token}} and the
// {{<resource>_id}} of the last created transaction, category or budget.
func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	for name, id := range t.ids {
		content = strings.ReplaceAll(content, "{{"+name+"_id}}", id.String())
	}
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status:  resp.StatusCode,
		headers: resp.Header,
		raw:     raw,
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var decoded any
	if err := decoder.Decode(&decoded); err != nil {
		t.response.body = string(raw)
		return nil
	}
	t.response.body = decoded

	if method == http.MethodPost && resp.StatusCode == http.StatusCreated {
		t.captureID(path, decoded)
	}

	return nil
}

func (t *testContext) captureID(path string, body any) {
	idStr, ok := getFieldValue(body, "id").(string)
	if !ok {
		return
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return
	}

	switch {
	case strings.HasPrefix(path, "/api/v1/transactions"):
		t.ids["transaction"] = id
	case strings.HasPrefix(path, "/api/v1/categories"):
		t.ids["category"] = id
	case strings.HasPrefix(path, "/api/v1/budgets"):
		t.ids["budget"] = id
	}
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expectedStatus, t.response.status, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %s", t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %s", t.response.raw)
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseBodyShouldContain(text string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if !strings.Contains(string(t.response.raw), text) {
		return fmt.Errorf("response body does not contain %q: %s", text, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %s", field, t.response.raw)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %s", field, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	items, ok := getFieldValue(t.response.body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not an array in response: %s", field, t.response.raw)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldContain(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := t.response.headers.Get(header)
	if !strings.Contains(value, expected) {
		return fmt.Errorf("header '%s' expected to contain '%s', got '%s'", header, expected, value)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theEmailProviderShouldHaveReceivedRequests(quantity int) error {
	count := apiMock.RequestCount(http.MethodPost, resendEmailPath)
	if count != quantity {
		return fmt.Errorf("expected %d email requests, got %d", quantity, count)
	}
	return nil
}

func (t *testContext) theEmailProviderRequestFieldShouldContain(index int, field, expected string) error {
	body := apiMock.GetRequestBody(http.MethodPost, resendEmailPath, index)
	if body == nil {
		return fmt.Errorf("email request %d not received", index)
	}

	actual := fmt.Sprintf("%v", getFieldValue(body, field))
	if !strings.Contains(actual, expected) {
		return fmt.Errorf("email request %d field '%s' expected to contain '%s', got '%s'", index, field, expected, actual)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	var field = object

	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
