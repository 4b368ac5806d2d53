package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
)

// unknownID never matches a stored row.
var unknownID = uuid.MustParse("00000000-0000-4000-8000-000000000000")

var namedPlaceholder = regexp.MustCompile(`\{\{(userId|itemId):([^}]+)\}\}`)

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
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

// replacePlaceholders substitutes ids captured earlier in the scenario.
// {{userId}} is the most recent user; {{userId:name}} and {{itemId:name}} look up by name.
func (t *testContext) replacePlaceholders(content string) string {
	content = namedPlaceholder.ReplaceAllStringFunc(content, func(match string) string {
		parts := namedPlaceholder.FindStringSubmatch(match)
		lookup := t.users
		if parts[1] == "itemId" {
			lookup = t.items
		}
		if id, ok := lookup[parts[2]]; ok {
			return id.String()
		}
		return match
	})
	content = strings.ReplaceAll(content, "{{userId}}", t.currentUser.String())
	content = strings.ReplaceAll(content, "{{unknownId}}", unknownID.String())
	content = strings.ReplaceAll(content, "{{resetCode}}", t.resetCode)
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.server.URL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode, raw: string(bodyBytes)}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody
	t.captureIDs(responseBody)
	return nil
}

// captureIDs remembers users and items created through the API.
func (t *testContext) captureIDs(body map[string]any) {
	data, ok := body["data"].(map[string]any)
	if !ok {
		return
	}

	if username, ok := data["username"].(string); ok {
		if id, err := uuid.Parse(fmt.Sprint(data["userId"])); err == nil {
			t.users[username] = id
			t.currentUser = id
		}
	}
	if name, ok := data["namaBarang"].(string); ok {
		if id, err := uuid.Parse(fmt.Sprint(data["barangId"])); err == nil {
			t.items[name] = id
		}
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
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if !strings.Contains(t.response.raw, t.replacePlaceholders(expected)) {
		return fmt.Errorf("response does not contain '%s': %s", expected, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseShouldNotContain(unexpected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if strings.Contains(t.response.raw, t.replacePlaceholders(unexpected)) {
		return fmt.Errorf("response contains '%s': %s", unexpected, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	expectedValue = t.replacePlaceholders(expectedValue)
	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.responseField(field)
	return err
}

func (t *testContext) theResponseFieldShouldNotExist(field string) error {
	if _, err := t.responseField(field); err == nil {
		return fmt.Errorf("field '%s' should not be in response: %s", field, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveElements(field string, count int) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}
	list, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, value)
	}
	if len(list) != count {
		return fmt.Errorf("field '%s' expected %d elements, got %d", field, count, len(list))
	}
	return nil
}

func (t *testContext) responseField(field string) (any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	value := getFieldValue(body, field)
	if value == nil {
		return nil, fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return value, nil
}

func getFieldValue(object map[string]any, dotSeparatedField string) any {
	var field any = object

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
