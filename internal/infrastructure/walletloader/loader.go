package walletloader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"positions_tracker/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
)

// LoadWallets reads tracked wallet addresses from a text file, one address
// per line. Blank lines and #-comments are skipped; lines that are not valid
// hex addresses are ignored.
func LoadWallets(filePath string) ([]entity.Wallet, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wallet file %s: %w", filePath, err)
	}
	defer file.Close()

	var wallets []entity.Wallet
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !common.IsHexAddress(line) {
			continue
		}
		wallets = append(wallets, entity.Wallet{Address: line})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning wallet file %s: %w", filePath, err)
	}
	return wallets, nil
}
