package postgres

import (
	"database/sql"
	"fmt"

	sonic "github.com/bytedance/sonic"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

func encodeJSON(value any) ([]byte, error) {
	encoded, err := sonic.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return encoded, nil
}

func decodeJSON(data []byte, target any) error {
	if len(data) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
