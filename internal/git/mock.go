package git

// Compile-time check that MockRepository implements Repository.
var _ Repository = (*MockRepository)(nil)

// MockRepository is a configurable mock implementation of Repository for testing.
// Each method is backed by a function field. If the function field is nil,
// the method returns sensible zero values.
type MockRepository struct {
	PathFunc             func() string
	WorkingDirectoryFunc func() string
	IsHeadDetachedFunc   func() bool
	HeadFunc             func() (Branch, error)
	BranchesFunc         func() ([]Branch, error)
	BranchHeadFunc       func(string) (Commit, error)
	CommitFromShaFunc    func(string) (Commit, error)
	MergeBaseFunc        func(string, string) ([]Commit, error)
}

func (m *MockRepository) Path() string {
	if m.PathFunc != nil {
		return m.PathFunc()
	}
	return ""
}

func (m *MockRepository) WorkingDirectory() string {
	if m.WorkingDirectoryFunc != nil {
		return m.WorkingDirectoryFunc()
	}
	return ""
}

func (m *MockRepository) IsHeadDetached() bool {
	if m.IsHeadDetachedFunc != nil {
		return m.IsHeadDetachedFunc()
	}
	return false
}

func (m *MockRepository) Head() (Branch, error) {
	if m.HeadFunc != nil {
		return m.HeadFunc()
	}
	return Branch{}, nil
}

func (m *MockRepository) Branches() ([]Branch, error) {
	if m.BranchesFunc != nil {
		return m.BranchesFunc()
	}
	return nil, nil
}

func (m *MockRepository) BranchHead(name string) (Commit, error) {
	if m.BranchHeadFunc != nil {
		return m.BranchHeadFunc(name)
	}
	return Commit{}, nil
}

func (m *MockRepository) CommitFromSha(sha string) (Commit, error) {
	if m.CommitFromShaFunc != nil {
		return m.CommitFromShaFunc(sha)
	}
	return Commit{}, nil
}

func (m *MockRepository) MergeBase(sha1, sha2 string) ([]Commit, error) {
	if m.MergeBaseFunc != nil {
		return m.MergeBaseFunc(sha1, sha2)
	}
	return nil, nil
}
