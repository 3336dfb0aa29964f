package constants_test

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/agentstation/fiwdb/pkg/constants"
)

// Example demonstrates building dataset paths from the layout constants
func Example() {
	members := filepath.Join("F0001", constants.MembersFile)
	fmt.Println(members)

	name := strings.Replace("bb"+constants.FoldsToken, constants.FoldsToken, "-train", 1)
	fmt.Println(name)

	fmt.Printf("%o\n", constants.FilePermissions)
	// Output:
	// F0001/mid.csv
	// bb-train
	// 644
}
