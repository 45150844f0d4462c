// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package repo

import (
	"github.com/google/wire"
)

// ProviderSet 提供仓储层相关的依赖
var ProviderSet = wire.NewSet(
	NewRepositories,
	ProvideCollectionRepo,
	ProvideFieldRepo,
)

// ProvideCollectionRepo 提供 Collection 仓储实例
func ProvideCollectionRepo(repos *Repositories) ICollectionRepository {
	return repos.Collection
}

// ProvideFieldRepo 提供 Field 仓储实例
func ProvideFieldRepo(repos *Repositories) IFieldRepository {
	return repos.Field
}
